package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/socrates/internal/client/api"
	"github.com/dmitrijs2005/socrates/internal/client/models"
)

// chatWindow is how many of the newest messages a render shows.
const chatWindow = 20

type chatAPI interface {
	Session(ctx context.Context, id models.ID) (models.Session, error)
	ToggleSessionMode(ctx context.Context, id models.ID, mode models.SessionMode) (models.Session, error)
	Messages(ctx context.Context, sessionID models.ID) ([]models.Message, error)
	SendMessage(ctx context.Context, sessionID models.ID, content string) (api.SendResult, error)
}

// Chat is the conversation screen of one session. Sent messages are
// appended from the server acknowledgement; assistant replies that arrive
// later are only seen after a reload.
type Chat struct {
	lifecycle
	api chatAPI
	id  models.ID

	mu       sync.RWMutex
	status   status
	session  *models.Session
	messages []models.Message
	sending  bool
	scrollTo models.ID
}

func NewChat(a chatAPI, id models.ID) *Chat {
	return &Chat{api: a, id: id}
}

func (v *Chat) Mount(ctx context.Context) {
	v.mount(ctx)
	if strings.TrimSpace(string(v.id)) == "" {
		v.mu.Lock()
		v.status.fail("Session not found", ErrMissingParam)
		v.mu.Unlock()
		return
	}
	v.reload()
}

func (v *Chat) reload() {
	ctx, gen := v.begin()

	v.mu.Lock()
	v.status.loading = true
	v.mu.Unlock()

	session, err := v.api.Session(ctx, v.id)
	var msgs []models.Message
	if err == nil {
		msgs, err = v.api.Messages(ctx, v.id)
	}

	if v.stale(gen) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.status.fail("Failed to load session", err)
		return
	}
	models.SortByCreated(msgs)
	v.session = &session
	v.setMessagesLocked(msgs)
	v.status.ok()
}

func (v *Chat) setMessagesLocked(msgs []models.Message) {
	v.messages = msgs
	v.scrollTo = ""
	if n := len(msgs); n > 0 {
		v.scrollTo = msgs[n-1].ID
	}
}

// Send posts text as a user message. Blank input is ignored.
func (v *Chat) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	v.mu.Lock()
	if v.session == nil {
		v.mu.Unlock()
		return fmt.Errorf("%w: session not loaded", ErrInvalidInput)
	}
	if v.sending {
		v.mu.Unlock()
		return ErrBusy
	}
	v.sending = true
	v.mu.Unlock()

	ctx, done := v.bind(ctx)
	defer done()
	res, err := v.api.SendMessage(ctx, v.id, text)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.sending = false
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.status.errMsg = "Failed to send message"
		v.status.cause = err
		return err
	}
	v.status.errMsg, v.status.cause = "", nil
	v.setMessagesLocked(append(v.messages, res.Messages()...))
	return nil
}

// ToggleMode switches the session's conversation mode.
func (v *Chat) ToggleMode(ctx context.Context, mode models.SessionMode) error {
	if _, ok := models.LookupMode(mode); !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, mode)
	}

	ctx, done := v.bind(ctx)
	defer done()
	s, err := v.api.ToggleSessionMode(ctx, v.id, mode)

	v.mu.Lock()
	defer v.mu.Unlock()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.status.errMsg = "Failed to change mode"
		v.status.cause = err
		return err
	}
	if s.Mode == "" {
		s.Mode = mode
	}
	if s.ID == "" && v.session != nil {
		merged := *v.session
		merged.Mode = s.Mode
		s = merged
	}
	v.session = &s
	return nil
}

func (v *Chat) Messages() []models.Message {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.Message{}, v.messages...)
}

// ScrollTarget is the message the viewport is pinned to: always the newest.
func (v *Chat) ScrollTarget() models.ID {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scrollTo
}

func (v *Chat) Session() (models.Session, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.session == nil {
		return models.Session{}, false
	}
	return *v.session, true
}

func (v *Chat) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status.cause
}

func sender(r models.MessageRole) string {
	switch r {
	case models.RoleUser:
		return "You"
	case models.RoleSystem:
		return "System"
	}
	return "AI Mentor"
}

func (v *Chat) Render(w io.Writer) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	p := &printer{w: w}
	if v.status.loading {
		p.line("Loading session...")
		return p.err
	}
	if v.session == nil {
		p.errorBanner(orDefault(v.status.errMsg, "Session not found"))
		p.line("Type 'projects' to go back.")
		return p.err
	}

	s := v.session
	p.header(orDefault(s.Title, "Untitled Session"))
	if o, ok := models.LookupMode(s.Mode); ok {
		p.line("Mode: %s (%s)", o.Label, o.Description)
	}
	if s.RoleDescription != "" {
		p.line("Role: %s", s.RoleDescription)
	}
	p.errorBanner(v.status.errMsg)
	p.blank()

	if len(v.messages) == 0 {
		p.line("No messages yet. Start the conversation!")
	}

	// The viewport follows the newest message.
	start := len(v.messages) - chatWindow
	if start < 0 {
		start = 0
	}
	if start > 0 {
		p.line("... %d earlier messages", start)
	}
	for _, m := range v.messages[start:] {
		p.line("%s (%s):", sender(m.Role), ago(m.CreatedAt.Time))
		for _, l := range strings.Split(m.Content, "\n") {
			p.line("  %s", l)
		}
	}
	if v.sending {
		p.line("Sending...")
	}
	return p.err
}
