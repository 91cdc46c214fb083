package models

import (
	"encoding/json"
	"strings"
)

type User struct {
	ID        ID     `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt Time   `json:"created_at"`
	UpdatedAt Time   `json:"updated_at"`
}

// DisplayName is the human-readable name, falling back to the email.
func (u User) DisplayName() string {
	return firstNonEmpty(u.Name, u.Email)
}

func (u *User) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID        ID     `json:"id"`
		UserID    ID     `json:"user_id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		CreatedAt Time   `json:"created_at"`
		UpdatedAt Time   `json:"updated_at"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*u = User{
		ID:        ID(firstNonEmpty(string(raw.ID), string(raw.UserID))),
		Email:     raw.Email,
		Name:      firstNonEmpty(raw.Name, raw.Username, FullName(raw.FirstName, raw.LastName)),
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}
	return nil
}

// FullName joins first and last name, trimming the gap when either is empty.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// ProfileUpdate is the body of PUT /profile.
type ProfileUpdate struct {
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}
