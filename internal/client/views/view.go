package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

var (
	ErrMissingParam = errors.New("missing route parameter")
	ErrBusy         = errors.New("a submission is already in progress")
	ErrClosed       = errors.New("form is closed")
	ErrInvalidInput = errors.New("invalid input")
)

// View is a mountable screen.
type View interface {
	Mount(ctx context.Context)
	Unmount()
	Render(w io.Writer) error
}

var doneCtx = func() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}()

// lifecycle ties requests to the time a view is mounted.
type lifecycle struct {
	lmu    sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	gen    uint64
}

func (l *lifecycle) mount(parent context.Context) {
	l.lmu.Lock()
	defer l.lmu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.ctx, l.cancel = context.WithCancel(parent)
}

func (l *lifecycle) Unmount() {
	l.lmu.Lock()
	defer l.lmu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
}

func (l *lifecycle) mountCtx() context.Context {
	if l.ctx == nil {
		return doneCtx
	}
	return l.ctx
}

// begin starts a load, superseding any load still in flight.
func (l *lifecycle) begin() (context.Context, uint64) {
	l.lmu.Lock()
	defer l.lmu.Unlock()
	l.gen++
	return l.mountCtx(), l.gen
}

// stale reports whether the load tagged gen must not touch view state.
func (l *lifecycle) stale(gen uint64) bool {
	l.lmu.Lock()
	defer l.lmu.Unlock()
	return gen != l.gen || l.mountCtx().Err() != nil
}

// bind derives a context for a user action that ends with the caller's
// context or with the mount, whichever comes first.
func (l *lifecycle) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	l.lmu.Lock()
	mctx := l.mountCtx()
	l.lmu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(mctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// status is the loading/error half shared by all controllers. Guarded by
// the owning view's mutex.
type status struct {
	loading bool
	errMsg  string
	cause   error
}

func (s *status) fail(msg string, err error) {
	s.loading = false
	s.errMsg = msg
	s.cause = err
}

func (s *status) ok() {
	s.loading = false
	s.errMsg = ""
	s.cause = nil
}

// printer writes lines and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) blank() { p.line("") }

func (p *printer) header(title string) {
	p.line("== %s ==", title)
}

func (p *printer) errorBanner(msg string) {
	if msg != "" {
		p.line("! %s", msg)
	}
}

var clock = time.Now

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, clock(), "ago", "from now")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
