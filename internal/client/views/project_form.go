package views

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/socrates/internal/client/models"
)

const (
	msgCreateProjectFailed = "Failed to create project"
	msgTitleRequired       = "Title is required"
)

type projectCreator interface {
	CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error)
}

// ProjectForm collects a new project. Technologies are entered as one
// comma-separated string.
type ProjectForm struct {
	modal
	api       projectCreator
	onSuccess func(models.Project)

	title       string
	description string
	techStack   string
}

func NewProjectForm(a projectCreator, onSuccess func(models.Project)) *ProjectForm {
	f := &ProjectForm{api: a, onSuccess: onSuccess}
	f.modal.generic = msgCreateProjectFailed
	f.modal.reset = func() {
		f.title, f.description, f.techStack = "", "", ""
	}
	return f
}

func (f *ProjectForm) SetTitle(s string) error {
	return f.edit(func() { f.title = s })
}

func (f *ProjectForm) SetDescription(s string) error {
	return f.edit(func() { f.description = s })
}

func (f *ProjectForm) SetTechStack(s string) error {
	return f.edit(func() { f.techStack = s })
}

// Payload is the request body the current fields produce.
func (f *ProjectForm) Payload() models.ProjectInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payloadLocked()
}

func (f *ProjectForm) payloadLocked() models.ProjectInput {
	return models.ProjectInput{
		Title:           strings.TrimSpace(f.title),
		Description:     strings.TrimSpace(f.description),
		TechnologyStack: models.SplitList(f.techStack),
	}
}

func (f *ProjectForm) Submit(ctx context.Context) (models.Project, error) {
	return submit(ctx, &f.modal, func() (func(context.Context) (models.Project, error), string) {
		in := f.payloadLocked()
		if in.Title == "" {
			return nil, msgTitleRequired
		}
		return func(ctx context.Context) (models.Project, error) {
			return f.api.CreateProject(ctx, in)
		}, ""
	}, f.onSuccess)
}

func renderProjectForm(p *printer, f *ProjectForm) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == ModalClosed {
		return
	}
	p.blank()
	p.header("Create New Project")
	p.errorBanner(f.errMsg)
	p.line("Title:        %s", f.title)
	p.line("Description:  %s", f.description)
	p.line("Technologies: %s", strings.Join(models.SplitList(f.techStack), ", "))
	if f.state == ModalSubmitting {
		p.line("Creating...")
	}
}
