package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/socrates/internal/client/router"
)

func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		if u := a.session.Snapshot().User; u != nil {
			s = u.DisplayName() + " "
		}
	}
	if m := a.mode(); m != "" {
		s = s + string(m)
	}
	s = strings.TrimSpace(s)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores the stored session, starts the connectivity watcher and
// blocks in the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Socrates (type 'help' for commands)")

	st := a.session.Init(ctx)
	a.log.Debug(ctx, "session restored", "status", st.Status.String())
	if st.Authenticated() {
		a.nav.Navigate(router.PathDashboard)
	}

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.show(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}
