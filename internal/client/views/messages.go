package views

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/socrates/internal/client/models"
	"github.com/dmitrijs2005/socrates/internal/client/router"
)

const previewLen = 100

var InboxFilters = []models.InboxFilter{models.InboxAll, models.InboxUnread, models.InboxArchived}

type inboxAPI interface {
	InboxMessages(ctx context.Context, filter models.InboxFilter) ([]models.Message, error)
	ArchiveMessage(ctx context.Context, id models.ID) error
	DeleteMessage(ctx context.Context, id models.ID) error
}

// Inbox lists messages across sessions. Changing the filter refetches.
type Inbox struct {
	lifecycle
	api inboxAPI

	mu       sync.RWMutex
	status   status
	filter   models.InboxFilter
	messages []models.Message
}

func NewInbox(a inboxAPI) *Inbox {
	return &Inbox{api: a, filter: models.InboxAll}
}

func (v *Inbox) Mount(ctx context.Context) {
	v.mount(ctx)
	v.reload()
}

func (v *Inbox) reload() {
	ctx, gen := v.begin()

	v.mu.Lock()
	v.status.loading = true
	filter := v.filter
	v.mu.Unlock()

	msgs, err := v.api.InboxMessages(ctx, filter)

	if v.stale(gen) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.status.fail("Failed to load messages", err)
		return
	}
	v.messages = msgs
	v.status.ok()
}

// SetFilter selects a subset and reloads it.
func (v *Inbox) SetFilter(f models.InboxFilter) error {
	known := false
	for _, k := range InboxFilters {
		known = known || k == f
	}
	if !known {
		return fmt.Errorf("%w: unknown filter %q", ErrInvalidInput, f)
	}

	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
	v.reload()
	return nil
}

func (v *Inbox) Filter() models.InboxFilter {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter
}

func (v *Inbox) Messages() []models.Message {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.Message{}, v.messages...)
}

func (v *Inbox) Archive(ctx context.Context, id models.ID) error {
	return v.mutate(ctx, id, v.api.ArchiveMessage, "Failed to archive message")
}

func (v *Inbox) Delete(ctx context.Context, id models.ID) error {
	return v.mutate(ctx, id, v.api.DeleteMessage, "Failed to delete message")
}

// mutate runs call and drops id from the list on success.
func (v *Inbox) mutate(ctx context.Context, id models.ID, call func(context.Context, models.ID) error, failMsg string) error {
	ctx, done := v.bind(ctx)
	defer done()
	err := call(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.status.errMsg, v.status.cause = failMsg, err
		return err
	}
	kept := v.messages[:0:0]
	for _, m := range v.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	v.messages = kept
	return nil
}

// Open returns the location of the session a message belongs to.
func (v *Inbox) Open(id models.ID) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, m := range v.messages {
		if m.ID != id {
			continue
		}
		if m.SessionID == "" {
			return "", fmt.Errorf("message %s: %w", id, ErrMissingParam)
		}
		return router.SessionPath(string(m.SessionID)), nil
	}
	return "", fmt.Errorf("message %s: %w", id, ErrInvalidInput)
}

func (v *Inbox) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status.cause
}

// Preview shortens content to its first hundred characters.
func Preview(content string) string {
	r := []rune(content)
	if len(r) <= previewLen {
		return content
	}
	return string(r[:previewLen]) + "..."
}

func (v *Inbox) Render(w io.Writer) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	p := &printer{w: w}
	p.header("Messages")
	if v.status.loading {
		p.line("Loading messages...")
		return p.err
	}
	p.errorBanner(v.status.errMsg)
	p.line("Filter: %s", v.filter)
	p.blank()

	if len(v.messages) == 0 {
		p.line("No messages")
		if v.filter == models.InboxAll {
			p.line("You don't have any messages yet. Start a new session to begin!")
		} else {
			p.line("No %s messages found.", v.filter)
		}
		return p.err
	}
	for _, m := range v.messages {
		p.line("* [%s] %s  %s", m.ID, sender(m.Role), ago(m.CreatedAt.Time))
		p.line("    %s", Preview(m.Content))
	}
	return p.err
}
