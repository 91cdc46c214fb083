package models

import (
	"encoding/json"
	"sort"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

type Message struct {
	ID        ID          `json:"id"`
	SessionID ID          `json:"session_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Read      bool        `json:"is_read"`
	Archived  bool        `json:"is_archived"`
	CreatedAt Time        `json:"created_at"`
}

func (m *Message) UnmarshalJSON(b []byte) error {
	type plain Message
	var raw struct {
		plain
		Type MessageRole `json:"type"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*m = Message(raw.plain)
	if m.Role == "" {
		m.Role = raw.Type
	}
	return nil
}

// SortByCreated orders messages oldest first. Equal timestamps keep their
// server order.
func SortByCreated(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt.Time)
	})
}

// MessageInput is the body of POST /sessions/{id}/messages.
type MessageInput struct {
	Content string      `json:"content"`
	Role    MessageRole `json:"role"`
}

// InboxFilter selects the subset of GET /messages.
type InboxFilter string

const (
	InboxAll      InboxFilter = "all"
	InboxUnread   InboxFilter = "unread"
	InboxArchived InboxFilter = "archived"
)
