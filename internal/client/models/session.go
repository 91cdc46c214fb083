package models

import (
	"encoding/json"
	"time"
)

type SessionMode string

const (
	ModeChat     SessionMode = "chat"
	ModeQuestion SessionMode = "question"
	ModeTeaching SessionMode = "teaching"
	ModeReview   SessionMode = "review"
)

// ModeOption is a selectable session mode with its fixed label pair.
type ModeOption struct {
	Mode        SessionMode
	Label       string
	Description string
}

// Modes lists the session modes in display order. The first entry is the
// default.
var Modes = []ModeOption{
	{ModeChat, "Chat", "Free-form conversation"},
	{ModeQuestion, "Q&A", "Answer specific questions"},
	{ModeTeaching, "Teaching", "AI teaches you"},
	{ModeReview, "Review", "Review and feedback"},
}

// LookupMode returns the option for m.
func LookupMode(m SessionMode) (ModeOption, bool) {
	for _, o := range Modes {
		if o.Mode == m {
			return o, true
		}
	}
	return ModeOption{}, false
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionArchived  SessionStatus = "archived"
)

type Session struct {
	ID              ID            `json:"id"`
	ProjectID       ID            `json:"project_id"`
	Title           string        `json:"title"`
	Mode            SessionMode   `json:"mode"`
	RoleDescription string        `json:"role_description"`
	Status          SessionStatus `json:"status"`
	MessageCount    int           `json:"message_count"`
	CreatedAt       Time          `json:"created_at"`
	UpdatedAt       Time          `json:"updated_at"`
	ArchivedAt      *time.Time    `json:"archived_at,omitempty"`
}

func (s *Session) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID              ID            `json:"id"`
		ProjectID       ID            `json:"project_id"`
		Title           string        `json:"title"`
		Name            string        `json:"name"`
		Mode            SessionMode   `json:"mode"`
		RoleDescription string        `json:"role_description"`
		Role            string        `json:"role"`
		Status          SessionStatus `json:"status"`
		MessageCount    int           `json:"message_count"`
		CreatedAt       Time          `json:"created_at"`
		UpdatedAt       Time          `json:"updated_at"`
		ArchivedAt      Time          `json:"archived_at"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Session{
		ID:              raw.ID,
		ProjectID:       raw.ProjectID,
		Title:           firstNonEmpty(raw.Title, raw.Name),
		Mode:            raw.Mode,
		RoleDescription: firstNonEmpty(raw.RoleDescription, raw.Role),
		Status:          raw.Status,
		MessageCount:    raw.MessageCount,
		CreatedAt:       raw.CreatedAt,
		UpdatedAt:       raw.UpdatedAt,
		ArchivedAt:      raw.ArchivedAt.Ptr(),
	}
	return nil
}

// SessionInput is the body of POST/PUT /sessions.
type SessionInput struct {
	ProjectID       ID          `json:"project_id"`
	Title           string      `json:"title"`
	Mode            SessionMode `json:"mode"`
	RoleDescription string      `json:"role_description"`
}
