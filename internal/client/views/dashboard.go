package views

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/dmitrijs2005/socrates/internal/client/models"
	"golang.org/x/sync/errgroup"
)

const recentLimit = 5

type dashboardAPI interface {
	Projects(ctx context.Context) ([]models.Project, error)
	Sessions(ctx context.Context) ([]models.Session, error)
	CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error)
}

type Stats struct {
	Projects int
	Sessions int
	Messages int
}

type Dashboard struct {
	lifecycle
	api  dashboardAPI
	user models.User

	// Create is the new-project form; success reloads the dashboard.
	Create *ProjectForm

	mu       sync.RWMutex
	status   status
	stats    Stats
	projects []models.Project
	sessions []models.Session
}

func NewDashboard(a dashboardAPI, user models.User) *Dashboard {
	d := &Dashboard{api: a, user: user}
	d.Create = NewProjectForm(a, func(models.Project) { d.reload() })
	return d
}

func (d *Dashboard) Mount(ctx context.Context) {
	d.mount(ctx)
	d.reload()
}

func (d *Dashboard) reload() {
	ctx, gen := d.begin()

	d.mu.Lock()
	d.status.loading = true
	d.mu.Unlock()

	var (
		projects []models.Project
		sessions []models.Session
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = d.api.Projects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = d.api.Sessions(gctx)
		return err
	})
	err := g.Wait()

	if d.stale(gen) {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.status.fail("Failed to load dashboard", err)
		return
	}

	msgs := 0
	for _, s := range sessions {
		msgs += s.MessageCount
	}
	d.stats = Stats{Projects: len(projects), Sessions: len(sessions), Messages: msgs}
	d.projects = recentProjects(projects)
	d.sessions = recentSessions(sessions)
	d.status.ok()
}

func recentProjects(in []models.Project) []models.Project {
	out := append([]models.Project(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	return out
}

func recentSessions(in []models.Session) []models.Session {
	out := append([]models.Session(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt.Time)
	})
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	return out
}

func (d *Dashboard) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

func (d *Dashboard) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status.loading
}

func (d *Dashboard) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status.cause
}

func (d *Dashboard) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p := &printer{w: w}
	p.header("Dashboard")
	p.line("Welcome back, %s!", d.user.DisplayName())
	p.errorBanner(d.status.errMsg)

	count := func(n int) any {
		if d.status.loading {
			return "-"
		}
		return n
	}
	p.line("Projects: %v   Sessions: %v   Messages: %v",
		count(d.stats.Projects), count(d.stats.Sessions), count(d.stats.Messages))
	p.blank()

	p.line("Recent Projects")
	if len(d.projects) == 0 {
		p.line("  No projects yet. Create your first project to get started!")
	}
	for _, pr := range d.projects {
		p.line("  [%s] %s  %s", pr.ID, orDefault(pr.Title, "Untitled Project"), pr.Status)
	}
	p.blank()

	p.line("Recent Sessions")
	if len(d.sessions) == 0 {
		p.line("  No sessions yet.")
	}
	for _, s := range d.sessions {
		p.line("  [%s] %s  %s  %s", s.ID, orDefault(s.Title, "Untitled Session"), s.Mode, ago(s.UpdatedAt.Time))
	}

	renderProjectForm(p, d.Create)
	return p.err
}
