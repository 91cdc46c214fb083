package models

import "math"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

var Themes = []Theme{ThemeLight, ThemeDark, ThemeAuto}

const (
	ModelSonnet = "claude-3-sonnet"
	ModelOpus   = "claude-3-opus"
	ModelHaiku  = "claude-3-haiku"
)

var LLMModels = []string{ModelSonnet, ModelOpus, ModelHaiku}

const (
	MinTemperature  = 0.0
	MaxTemperature  = 1.0
	TemperatureStep = 0.1

	MinMaxTokens  = 100
	MaxMaxTokens  = 4000
	MaxTokensStep = 100
)

type Settings struct {
	Theme       Theme   `json:"theme"`
	LLMModel    string  `json:"llm_model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:       ThemeLight,
		LLMModel:    ModelSonnet,
		Temperature: 0.7,
		MaxTokens:   2000,
	}
}

// Normalize fills unknown or out-of-range values so the result is always a
// valid update payload.
func (s Settings) Normalize() Settings {
	d := DefaultSettings()
	if !validTheme(s.Theme) {
		s.Theme = d.Theme
	}
	if !validModel(s.LLMModel) {
		s.LLMModel = d.LLMModel
	}
	s.Temperature = ClampTemperature(s.Temperature)
	if s.MaxTokens == 0 {
		s.MaxTokens = d.MaxTokens
	}
	s.MaxTokens = ClampMaxTokens(s.MaxTokens)
	return s
}

// ClampTemperature bounds v to [0,1] and snaps it to one decimal.
func ClampTemperature(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultSettings().Temperature
	}
	v = math.Round(v/TemperatureStep) * TemperatureStep
	v = math.Round(v*10) / 10
	return math.Min(MaxTemperature, math.Max(MinTemperature, v))
}

// ClampMaxTokens bounds v to [100,4000] and snaps it to the nearest hundred.
func ClampMaxTokens(v int) int {
	if v <= MinMaxTokens {
		return MinMaxTokens
	}
	if v >= MaxMaxTokens {
		return MaxMaxTokens
	}
	return int(math.Round(float64(v)/MaxTokensStep)) * MaxTokensStep
}

func validTheme(t Theme) bool {
	for _, v := range Themes {
		if v == t {
			return true
		}
	}
	return false
}

func validModel(m string) bool {
	for _, v := range LLMModels {
		if v == m {
			return true
		}
	}
	return false
}

// ParseTheme reports whether s names a known theme.
func ParseTheme(s string) (Theme, bool) {
	t := Theme(s)
	return t, validTheme(t)
}

// ParseModel accepts a full model id or its short name (sonnet, opus, haiku).
func ParseModel(s string) (string, bool) {
	if validModel(s) {
		return s, true
	}
	if full := "claude-3-" + s; validModel(full) {
		return full, true
	}
	return "", false
}
