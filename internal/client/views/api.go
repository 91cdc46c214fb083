package views

import (
	"context"

	"github.com/dmitrijs2005/socrates/internal/client/api"
	"github.com/dmitrijs2005/socrates/internal/client/models"
)

type ProjectsAPI interface {
	Projects(ctx context.Context) ([]models.Project, error)
	Project(ctx context.Context, id models.ID) (models.Project, error)
	CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error)
}

type SessionsAPI interface {
	Sessions(ctx context.Context) ([]models.Session, error)
	Session(ctx context.Context, id models.ID) (models.Session, error)
	CreateSession(ctx context.Context, in models.SessionInput) (models.Session, error)
	ToggleSessionMode(ctx context.Context, id models.ID, mode models.SessionMode) (models.Session, error)
}

type MessagesAPI interface {
	Messages(ctx context.Context, sessionID models.ID) ([]models.Message, error)
	SendMessage(ctx context.Context, sessionID models.ID, content string) (api.SendResult, error)
	InboxMessages(ctx context.Context, filter models.InboxFilter) ([]models.Message, error)
	ArchiveMessage(ctx context.Context, id models.ID) error
	DeleteMessage(ctx context.Context, id models.ID) error
}

type SettingsAPI interface {
	Settings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, s models.Settings) (models.Settings, error)
}

// API is everything the controllers use. *api.Client satisfies it.
type API interface {
	ProjectsAPI
	SessionsAPI
	MessagesAPI
	SettingsAPI
}

var _ API = (*api.Client)(nil)
