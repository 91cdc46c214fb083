package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/socrates/internal/client/models"
)

// ProjectFilter narrows the project list without refetching.
type ProjectFilter string

const FilterAll ProjectFilter = "all"

var ProjectFilters = []ProjectFilter{
	FilterAll,
	ProjectFilter(models.ProjectPlanning),
	ProjectFilter(models.ProjectActive),
	ProjectFilter(models.ProjectCompleted),
}

func (f ProjectFilter) matches(p models.Project) bool {
	return f == FilterAll || p.Status.Is(models.ProjectStatus(f))
}

type projectsAPI interface {
	Projects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error)
}

// Projects lists the user's projects. It fetches on mount and after a
// project is created, never on filter change.
type Projects struct {
	lifecycle
	api projectsAPI

	Create *ProjectForm

	mu       sync.RWMutex
	status   status
	projects []models.Project
	filter   ProjectFilter
}

func NewProjects(a projectsAPI) *Projects {
	v := &Projects{api: a, filter: FilterAll}
	v.Create = NewProjectForm(a, func(models.Project) { v.reload() })
	return v
}

func (v *Projects) Mount(ctx context.Context) {
	v.mount(ctx)
	v.reload()
}

func (v *Projects) reload() {
	ctx, gen := v.begin()

	v.mu.Lock()
	v.status.loading = true
	v.mu.Unlock()

	projects, err := v.api.Projects(ctx)

	if v.stale(gen) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.status.fail("Failed to load projects", err)
		return
	}
	v.projects = projects
	v.status.ok()
}

func (v *Projects) SetFilter(f ProjectFilter) error {
	for _, known := range ProjectFilters {
		if strings.EqualFold(string(known), string(f)) {
			v.mu.Lock()
			v.filter = known
			v.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("%w: unknown filter %q", ErrInvalidInput, f)
}

func (v *Projects) Filter() ProjectFilter {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter
}

// Visible returns the projects that pass the current filter.
func (v *Projects) Visible() []models.Project {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visibleLocked()
}

func (v *Projects) visibleLocked() []models.Project {
	out := []models.Project{}
	for _, p := range v.projects {
		if v.filter.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (v *Projects) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status.cause
}

func (v *Projects) Render(w io.Writer) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	p := &printer{w: w}
	p.header("Projects")
	if v.status.loading {
		p.line("Loading projects...")
		return p.err
	}
	p.errorBanner(v.status.errMsg)
	p.line("Filter: %s", v.filter)
	p.blank()

	if len(v.projects) == 0 {
		p.line("No projects yet")
		p.line("Create your first project to organize your learning journey.")
	} else {
		visible := v.visibleLocked()
		if len(visible) == 0 {
			p.line("No %s projects.", v.filter)
		}
		for _, pr := range visible {
			renderProjectCard(p, pr)
		}
	}

	renderProjectForm(p, v.Create)
	return p.err
}

func renderProjectCard(p *printer, pr models.Project) {
	p.line("* [%s] %s", pr.ID, orDefault(pr.Title, "Untitled Project"))
	p.line("    %s", orDefault(pr.Description, "No description"))
	if len(pr.TechnologyStack) > 0 {
		p.line("    %s", strings.Join(pr.TechnologyStack, ", "))
	}
	p.line("    status: %s  created %s", pr.Status, ago(pr.CreatedAt.Time))
}
