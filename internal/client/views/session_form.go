package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/socrates/internal/client/models"
)

const msgCreateSessionFailed = "Failed to create session"

type sessionCreator interface {
	CreateSession(ctx context.Context, in models.SessionInput) (models.Session, error)
}

// SessionForm collects a new session inside one project.
type SessionForm struct {
	modal
	api       sessionCreator
	projectID models.ID
	onSuccess func(models.Session)

	title           string
	mode            models.SessionMode
	roleDescription string
}

func NewSessionForm(a sessionCreator, projectID models.ID, onSuccess func(models.Session)) *SessionForm {
	f := &SessionForm{api: a, projectID: projectID, onSuccess: onSuccess, mode: models.Modes[0].Mode}
	f.modal.generic = msgCreateSessionFailed
	f.modal.reset = func() {
		f.title, f.roleDescription = "", ""
		f.mode = models.Modes[0].Mode
	}
	return f
}

func (f *SessionForm) SetTitle(s string) error {
	return f.edit(func() { f.title = s })
}

func (f *SessionForm) SetRoleDescription(s string) error {
	return f.edit(func() { f.roleDescription = s })
}

// SetMode selects one of models.Modes.
func (f *SessionForm) SetMode(m models.SessionMode) error {
	if _, ok := models.LookupMode(m); !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, m)
	}
	return f.edit(func() { f.mode = m })
}

func (f *SessionForm) Mode() models.SessionMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

func (f *SessionForm) Payload() models.SessionInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payloadLocked()
}

func (f *SessionForm) payloadLocked() models.SessionInput {
	return models.SessionInput{
		ProjectID:       f.projectID,
		Title:           strings.TrimSpace(f.title),
		Mode:            f.mode,
		RoleDescription: strings.TrimSpace(f.roleDescription),
	}
}

func (f *SessionForm) Submit(ctx context.Context) (models.Session, error) {
	return submit(ctx, &f.modal, func() (func(context.Context) (models.Session, error), string) {
		in := f.payloadLocked()
		if in.Title == "" {
			return nil, msgTitleRequired
		}
		return func(ctx context.Context) (models.Session, error) {
			return f.api.CreateSession(ctx, in)
		}, ""
	}, f.onSuccess)
}

func renderSessionForm(p *printer, f *SessionForm) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == ModalClosed {
		return
	}
	p.blank()
	p.header("Create New Session")
	p.errorBanner(f.errMsg)
	p.line("Title: %s", f.title)
	for _, o := range models.Modes {
		mark := " "
		if o.Mode == f.mode {
			mark = "*"
		}
		p.line(" %s %-9s %-8s %s", mark, o.Mode, o.Label, o.Description)
	}
	p.line("Role:  %s", f.roleDescription)
	if f.state == ModalSubmitting {
		p.line("Creating...")
	}
}
