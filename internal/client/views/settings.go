package views

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/socrates/internal/client/models"
)

const (
	DefaultBannerDelay = 3 * time.Second

	msgSettingsSaved      = "Settings saved successfully!"
	msgSettingsSaveFailed = "Failed to save settings"
)

type settingsAPI interface {
	Settings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, s models.Settings) (models.Settings, error)
}

// Settings edits the preference sub-resource. Every setter keeps the value
// inside its allowed range, so Save never sends an invalid payload.
type Settings struct {
	lifecycle
	api   settingsAPI
	delay time.Duration

	mu       sync.RWMutex
	status   status
	settings models.Settings
	saving   bool
	banner   string
	timer    *time.Timer
	bannerID uint64
}

func NewSettings(a settingsAPI, bannerDelay time.Duration) *Settings {
	if bannerDelay <= 0 {
		bannerDelay = DefaultBannerDelay
	}
	return &Settings{api: a, delay: bannerDelay, settings: models.DefaultSettings()}
}

func (v *Settings) Mount(ctx context.Context) {
	v.mount(ctx)
	v.reload()
}

func (v *Settings) Unmount() {
	v.lifecycle.Unmount()
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.timer != nil {
		v.timer.Stop()
	}
}

func (v *Settings) reload() {
	ctx, gen := v.begin()

	v.mu.Lock()
	v.status.loading = true
	v.mu.Unlock()

	s, err := v.api.Settings(ctx)

	if v.stale(gen) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.status.fail("Failed to load settings", err)
		return
	}
	v.settings = s.Normalize()
	v.status.ok()
}

func (v *Settings) Current() models.Settings {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.settings
}

func (v *Settings) SetTheme(s string) error {
	t, ok := models.ParseTheme(s)
	if !ok {
		return fmt.Errorf("%w: theme must be one of %v", ErrInvalidInput, models.Themes)
	}
	v.mu.Lock()
	v.settings.Theme = t
	v.mu.Unlock()
	return nil
}

func (v *Settings) SetModel(s string) error {
	m, ok := models.ParseModel(s)
	if !ok {
		return fmt.Errorf("%w: model must be one of %v", ErrInvalidInput, models.LLMModels)
	}
	v.mu.Lock()
	v.settings.LLMModel = m
	v.mu.Unlock()
	return nil
}

// SetTemperature stores t clamped to [0,1] in steps of 0.1 and returns the
// stored value.
func (v *Settings) SetTemperature(t float64) float64 {
	t = models.ClampTemperature(t)
	v.mu.Lock()
	v.settings.Temperature = t
	v.mu.Unlock()
	return t
}

// SetMaxTokens stores n clamped to [100,4000] in steps of 100 and returns
// the stored value.
func (v *Settings) SetMaxTokens(n int) int {
	n = models.ClampMaxTokens(n)
	v.mu.Lock()
	v.settings.MaxTokens = n
	v.mu.Unlock()
	return n
}

// Save replaces the server settings with the current values. Either outcome
// shows a banner that clears itself after the configured delay.
func (v *Settings) Save(ctx context.Context) error {
	v.mu.Lock()
	if v.saving {
		v.mu.Unlock()
		return ErrBusy
	}
	v.saving = true
	payload := v.settings.Normalize()
	v.mu.Unlock()

	ctx, done := v.bind(ctx)
	defer done()
	_, err := v.api.UpdateSettings(ctx, payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.saving = false
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.showBannerLocked(msgSettingsSaveFailed)
		return err
	}
	v.settings = payload
	v.showBannerLocked(msgSettingsSaved)
	return nil
}

func (v *Settings) showBannerLocked(msg string) {
	v.banner = msg
	v.bannerID++
	id := v.bannerID
	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.delay, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.bannerID == id {
			v.banner = ""
		}
	})
}

// Banner is the transient save result, empty when none is showing.
func (v *Settings) Banner() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.banner
}

func (v *Settings) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status.cause
}

func (v *Settings) Render(w io.Writer) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	p := &printer{w: w}
	p.header("Settings")
	if v.status.loading {
		p.line("Loading settings...")
		return p.err
	}
	p.errorBanner(v.status.errMsg)
	if v.banner != "" {
		p.line("> %s", v.banner)
	}

	s := v.settings
	p.line("Theme:        %s   (%v)", s.Theme, models.Themes)
	p.line("Model:        %s", s.LLMModel)
	p.line("Temperature:  %.1f   [%.1f - %.1f]", s.Temperature, models.MinTemperature, models.MaxTemperature)
	p.line("Max tokens:   %d   [%d - %d]", s.MaxTokens, models.MinMaxTokens, models.MaxMaxTokens)
	if v.saving {
		p.line("Saving...")
	}
	return p.err
}
