package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/socrates/internal/client/api"
	"github.com/dmitrijs2005/socrates/internal/client/auth"
	"github.com/dmitrijs2005/socrates/internal/client/config"
	"github.com/dmitrijs2005/socrates/internal/client/localdb"
	"github.com/dmitrijs2005/socrates/internal/client/router"
	"github.com/dmitrijs2005/socrates/internal/client/tokenstore"
	"github.com/dmitrijs2005/socrates/internal/filex"
	"github.com/dmitrijs2005/socrates/internal/logging"
	"go.uber.org/multierr"
)

const (
	stateFile = "socrates.db"
	keyFile   = "token.key"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	tokens  *tokenstore.Store
	client  *api.Client
	session *auth.Store
	nav     *router.Navigator
	reader  *bufio.Reader
	out     io.Writer
	closers []io.Closer

	// syncMu serializes screen changes; outMu serializes writes to out.
	syncMu sync.Mutex
	outMu  sync.Mutex

	mu        sync.Mutex
	Mode      Mode
	screen    screen
	failure   error
	closed    bool
	mountWait time.Duration
}

// NewApp wires storage, the API client, the session store and navigation.
// in and out are the terminal; logs never go to out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	a := &App{config: c, reader: bufio.NewReader(in), out: out, mountWait: defaultMountWait}

	logW := io.Writer(os.Stderr)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		logW = f
	}
	a.log = logging.New(logW, c.LogLevel)

	dsn := localdb.InMemory
	var opts []tokenstore.Option
	if c.StateDir != config.InMemory {
		stateDir := c.StateDir
		if stateDir == "" {
			stateDir = config.DefaultStateDir()
		}
		dir, err := filex.EnsureDir(stateDir)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("state dir: %w", err), a.Close())
		}
		dsn = filepath.Join(dir, stateFile)
		if c.SealToken {
			sealer, err := tokenstore.NewKeyFileSealer(filepath.Join(dir, keyFile))
			if err != nil {
				return nil, multierr.Append(err, a.Close())
			}
			opts = append(opts, tokenstore.WithSealer(sealer))
		}
	}

	db, err := localdb.Open(ctx, dsn)
	if err != nil {
		a.log.Error(ctx, "error initializing database", "err", err)
		return nil, multierr.Append(err, a.Close())
	}
	a.db = db

	a.tokens = tokenstore.New(db, opts...)
	a.client = api.New(c.APIBaseURL, a.tokens,
		api.WithHealthURL(c.HealthURL),
		api.WithLogger(a.log.With("component", "api")),
	)
	a.session = auth.NewStore(a.client, a.tokens, a.log.With("component", "auth"))
	a.session.OnChange(func(st auth.State) {
		a.log.Debug(ctx, "session state changed", "status", st.Status.String())
	})

	table := router.NewTable()
	a.nav = router.NewNavigator(router.NewGuard(table), a.session.Snapshot)

	a.client.OnUnauthorized(func(ctx context.Context) {
		a.nav.ForceLogin()
		a.session.Invalidate()
	})
	return a, nil
}

// Close releases the database and the log file.
func (a *App) Close() error {
	a.mu.Lock()
	a.closed = true
	if a.screen.view != nil {
		a.screen.view.Unmount()
	}
	a.mu.Unlock()

	var err error
	if a.db != nil {
		err = multierr.Append(err, a.db.Close())
	}
	for _, c := range a.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run resolves the stored session, then serves the REPL until the user
// exits or in is exhausted.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "close", "err", err)
		}
	}()
	a.Root(ctx)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

// StartOnlineStatusWatcher polls the health endpoint every interval until
// ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.client.Health(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
