package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/socrates/internal/client/models"
	"github.com/dmitrijs2005/socrates/internal/client/router"
	"github.com/dmitrijs2005/socrates/internal/client/views"
)

// screen is what is currently mounted.
type screen struct {
	location string
	kind     router.Kind
	view     views.View
	load     *mountState
}

// textView is a screen without data.
type textView []string

func (textView) Mount(context.Context) {}
func (textView) Unmount()              {}

func (t textView) Render(w io.Writer) error {
	for _, l := range t {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

var (
	landingView = textView{
		"== Socrates ==",
		"Guided learning sessions with an AI mentor.",
		"Type 'login' or 'register' to get started.",
	}
	loginView    = textView{"== Sign in ==", "Type 'login' to enter your email and password, or 'register' to create an account."}
	registerView = textView{"== Create account ==", "Type 'register' to enter your email, name and password."}
	loadingView  = textView{"Loading..."}
)

func (a *App) buildView(d router.Decision) views.View {
	if d.Kind == router.Placeholder {
		return loadingView
	}

	var user models.User
	if u := a.session.Snapshot().User; u != nil {
		user = *u
	}

	switch d.Route.Name {
	case router.RouteLogin:
		return loginView
	case router.RouteRegister:
		return registerView
	case router.RouteDashboard:
		return views.NewDashboard(a.client, user)
	case router.RouteProjects:
		return views.NewProjects(a.client)
	case router.RouteProject:
		return views.NewProjectDetail(a.client, models.ID(d.Params[router.ParamProjectID]))
	case router.RouteSession:
		return views.NewChat(a.client, models.ID(d.Params[router.ParamSessionID]))
	case router.RouteMessages:
		return views.NewInbox(a.client)
	case router.RouteSettings:
		return views.NewSettings(a.client, a.config.BannerDelay)
	}
	return landingView
}

// defaultMountWait is how long show waits for a screen to load before it
// prints the placeholder and hands the render to the loader.
const defaultMountWait = 250 * time.Millisecond

// mountState tracks one mount. loaded and pending are guarded by App.mu.
type mountState struct {
	done    chan struct{}
	loaded  bool
	pending bool
}

// show brings the mounted screen in line with the navigator and renders
// it. A screen still loading after mountWait shows the placeholder; the
// loader renders it once the data arrives. The REPL keeps reading commands
// meanwhile, so navigating away unmounts the view and cancels its requests.
func (a *App) show(ctx context.Context) {
	a.sync(ctx)
	for {
		a.mu.Lock()
		ld := a.screen.load
		a.mu.Unlock()

		if ld != nil && !a.settled(ld) {
			a.write(loadingView.Render)
			return
		}

		a.mu.Lock()
		same := a.screen.load == ld
		a.mu.Unlock()
		if same {
			break
		}
		// The load redirected, wait for the new screen.
	}
	a.present(ctx)
}

// settled waits up to mountWait for ld. When it gives up, the loader is told
// to render on completion.
func (a *App) settled(ld *mountState) bool {
	t := time.NewTimer(a.mountWait)
	defer t.Stop()
	select {
	case <-ld.done:
	case <-t.C:
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !ld.loaded {
		ld.pending = true
	}
	return ld.loaded
}

func (a *App) sync(ctx context.Context) {
	a.syncMu.Lock()
	defer a.syncMu.Unlock()

	d := a.nav.Resolve()
	loc := a.nav.Current()

	a.mu.Lock()
	skip := a.closed || (a.screen.view != nil && a.screen.location == loc && a.screen.kind == d.Kind)
	a.mu.Unlock()
	if skip {
		return
	}
	a.mount(ctx, loc, d)
}

// mount swaps in the view for loc and loads it in the background. Callers
// hold syncMu.
func (a *App) mount(ctx context.Context, loc string, d router.Decision) {
	v := a.buildView(d)
	ld := &mountState{done: make(chan struct{})}

	a.mu.Lock()
	old := a.screen.view
	a.screen = screen{location: loc, kind: d.Kind, view: v, load: ld}
	a.mu.Unlock()

	if old != nil {
		old.Unmount()
	}

	go func() {
		v.Mount(ctx)

		// Loading may have hit a 401 and moved the navigator.
		if a.nav.Current() != loc {
			a.sync(ctx)
		}

		a.mu.Lock()
		ld.loaded = true
		render := ld.pending && a.screen.load == ld && !a.closed
		a.mu.Unlock()
		close(ld.done)

		if render {
			a.present(ctx)
		}
	}()
}

func (a *App) current() views.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen.view
}

func (a *App) present(ctx context.Context) {
	if err := a.render(); err != nil {
		a.mu.Lock()
		a.failure = err
		a.mu.Unlock()
		a.log.Error(ctx, "render failed", "err", err)
		a.renderFailure(err)
	}
}

// write renders fn into a buffer and copies it to out in one piece.
func (a *App) write(fn func(io.Writer) error) error {
	var buf bytes.Buffer
	err := fn(&buf)

	a.outMu.Lock()
	defer a.outMu.Unlock()
	if _, werr := a.out.Write(buf.Bytes()); werr != nil && err == nil {
		err = werr
	}
	return err
}

// render writes the current screen. A panic in a view is returned as an
// error so the root can replace the screen.
func (a *App) render() error {
	a.mu.Lock()
	failure := a.failure
	v := a.screen.view
	a.mu.Unlock()

	if failure != nil {
		a.renderFailure(failure)
		return nil
	}
	if v == nil {
		return nil
	}

	return a.write(func(w io.Writer) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("render panic: %v", r)
			}
		}()
		return v.Render(w)
	})
}

func (a *App) renderFailure(err error) {
	_ = a.write(textView{
		"== Something went wrong ==",
		err.Error(),
		"Type 'reload' to start over.",
	}.Render)
}

// Reload clears a failure screen and remounts the current location.
func (a *App) Reload(ctx context.Context) error {
	a.mu.Lock()
	a.failure = nil
	a.mu.Unlock()

	a.syncMu.Lock()
	defer a.syncMu.Unlock()
	a.mount(ctx, a.nav.Current(), a.nav.Resolve())
	return nil
}

func (a *App) Navigate(ctx context.Context, location string) error {
	a.nav.Navigate(location)
	return nil
}

func (a *App) Back(ctx context.Context) error {
	a.nav.Back()
	return nil
}
