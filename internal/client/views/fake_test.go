package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/socrates/internal/client/api"
	"github.com/dmitrijs2005/socrates/internal/client/models"
)

// fakeAPI records calls and serves canned data. A nil func field falls back
// to the canned value.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	projects []models.Project
	project  models.Project
	sessions []models.Session
	session  models.Session
	messages []models.Message
	inbox    map[models.InboxFilter][]models.Message
	settings models.Settings

	err          error
	sendErr      error
	createErr    error
	lastProject  models.ProjectInput
	lastSession  models.SessionInput
	lastSettings models.Settings
	lastFilter   models.InboxFilter

	onSend     func(ctx context.Context, content string) (api.SendResult, error)
	onMessages func(ctx context.Context) ([]models.Message, error)
}

func newFake() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}, inbox: map[models.InboxFilter][]models.Message{}}
}

func (f *fakeAPI) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Projects(ctx context.Context) ([]models.Project, error) {
	f.hit("Projects")
	return append([]models.Project{}, f.projects...), f.err
}

func (f *fakeAPI) Project(ctx context.Context, id models.ID) (models.Project, error) {
	f.hit("Project")
	return f.project, f.err
}

func (f *fakeAPI) CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	f.hit("CreateProject")
	f.lastProject = in
	if f.createErr != nil {
		return models.Project{}, f.createErr
	}
	p := models.Project{ID: "new", Title: in.Title, TechnologyStack: in.TechnologyStack, Status: models.ProjectPlanning}
	f.projects = append(f.projects, p)
	return p, nil
}

func (f *fakeAPI) Sessions(ctx context.Context) ([]models.Session, error) {
	f.hit("Sessions")
	return append([]models.Session{}, f.sessions...), f.err
}

func (f *fakeAPI) Session(ctx context.Context, id models.ID) (models.Session, error) {
	f.hit("Session")
	return f.session, f.err
}

func (f *fakeAPI) CreateSession(ctx context.Context, in models.SessionInput) (models.Session, error) {
	f.hit("CreateSession")
	f.lastSession = in
	if f.createErr != nil {
		return models.Session{}, f.createErr
	}
	s := models.Session{ID: "s-new", ProjectID: in.ProjectID, Title: in.Title, Mode: in.Mode}
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakeAPI) ToggleSessionMode(ctx context.Context, id models.ID, mode models.SessionMode) (models.Session, error) {
	f.hit("ToggleSessionMode")
	s := f.session
	s.Mode = mode
	return s, f.err
}

func (f *fakeAPI) Messages(ctx context.Context, sessionID models.ID) ([]models.Message, error) {
	f.hit("Messages")
	if f.onMessages != nil {
		return f.onMessages(ctx)
	}
	return append([]models.Message{}, f.messages...), f.err
}

func (f *fakeAPI) SendMessage(ctx context.Context, sessionID models.ID, content string) (api.SendResult, error) {
	f.hit("SendMessage")
	if f.onSend != nil {
		return f.onSend(ctx, content)
	}
	if f.sendErr != nil {
		return api.SendResult{}, f.sendErr
	}
	return api.SendResult{User: models.Message{ID: "sent", SessionID: sessionID, Role: models.RoleUser, Content: content}}, nil
}

func (f *fakeAPI) InboxMessages(ctx context.Context, filter models.InboxFilter) ([]models.Message, error) {
	f.hit("InboxMessages")
	f.lastFilter = filter
	return append([]models.Message{}, f.inbox[filter]...), f.err
}

func (f *fakeAPI) ArchiveMessage(ctx context.Context, id models.ID) error {
	f.hit("ArchiveMessage")
	return f.err
}

func (f *fakeAPI) DeleteMessage(ctx context.Context, id models.ID) error {
	f.hit("DeleteMessage")
	return f.err
}

func (f *fakeAPI) Settings(ctx context.Context) (models.Settings, error) {
	f.hit("Settings")
	return f.settings, f.err
}

func (f *fakeAPI) UpdateSettings(ctx context.Context, s models.Settings) (models.Settings, error) {
	f.hit("UpdateSettings")
	f.lastSettings = s
	return s, f.err
}

var _ API = (*fakeAPI)(nil)
