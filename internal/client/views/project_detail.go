package views

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/socrates/internal/client/models"
)

type projectDetailAPI interface {
	Project(ctx context.Context, id models.ID) (models.Project, error)
	Sessions(ctx context.Context) ([]models.Session, error)
	CreateSession(ctx context.Context, in models.SessionInput) (models.Session, error)
}

// ProjectDetail shows one project and its sessions. The backend has no
// per-project session listing, so all sessions are fetched and filtered.
type ProjectDetail struct {
	lifecycle
	api projectDetailAPI
	id  models.ID

	Create *SessionForm

	mu       sync.RWMutex
	status   status
	project  *models.Project
	sessions []models.Session
}

func NewProjectDetail(a projectDetailAPI, id models.ID) *ProjectDetail {
	v := &ProjectDetail{api: a, id: id}
	v.Create = NewSessionForm(a, id, func(models.Session) { v.reload() })
	return v
}

func (v *ProjectDetail) Mount(ctx context.Context) {
	v.mount(ctx)
	if strings.TrimSpace(string(v.id)) == "" {
		v.mu.Lock()
		v.status.fail("Project not found", ErrMissingParam)
		v.mu.Unlock()
		return
	}
	v.reload()
}

func (v *ProjectDetail) reload() {
	ctx, gen := v.begin()

	v.mu.Lock()
	v.status.loading = true
	v.mu.Unlock()

	project, err := v.api.Project(ctx, v.id)
	var sessions []models.Session
	if err == nil {
		sessions, err = v.api.Sessions(ctx)
	}

	if v.stale(gen) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.status.fail("Failed to load project", err)
		return
	}

	v.project = &project
	v.sessions = v.sessions[:0]
	for _, s := range sessions {
		if s.ProjectID != "" && s.ProjectID == v.id {
			v.sessions = append(v.sessions, s)
		}
	}
	v.status.ok()
}

func (v *ProjectDetail) Project() (models.Project, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.project == nil {
		return models.Project{}, false
	}
	return *v.project, true
}

func (v *ProjectDetail) Sessions() []models.Session {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.Session{}, v.sessions...)
}

func (v *ProjectDetail) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status.cause
}

func (v *ProjectDetail) Render(w io.Writer) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	p := &printer{w: w}
	if v.status.loading {
		p.line("Loading project...")
		return p.err
	}
	if v.project == nil {
		p.errorBanner(orDefault(v.status.errMsg, "Project not found"))
		p.line("Type 'projects' to go back.")
		return p.err
	}

	pr := v.project
	p.header(orDefault(pr.Title, "Untitled Project"))
	p.errorBanner(v.status.errMsg)
	p.line("%s", orDefault(pr.Description, "No description"))
	if len(pr.TechnologyStack) > 0 {
		p.line("Technologies: %s", strings.Join(pr.TechnologyStack, ", "))
	}
	p.line("Status: %s   Created %s", pr.Status, ago(pr.CreatedAt.Time))
	p.blank()

	p.line("Sessions")
	if len(v.sessions) == 0 {
		p.line("  No sessions yet. Create your first session to begin.")
	}
	for _, s := range v.sessions {
		label := string(s.Mode)
		if o, ok := models.LookupMode(s.Mode); ok {
			label = o.Label
		}
		p.line("  [%s] %s  %s  %s", s.ID, orDefault(s.Title, "Untitled Session"), label, orDefault(string(s.Status), "active"))
	}

	renderSessionForm(p, v.Create)
	return p.err
}
