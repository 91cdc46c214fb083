package models

import (
	"encoding/json"
	"strings"
)

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
)

// Is compares statuses ignoring case; the backend has sent both "active"
// and "ACTIVE".
func (s ProjectStatus) Is(other ProjectStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

type Project struct {
	ID              ID            `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	TechnologyStack []string      `json:"technology_stack"`
	Status          ProjectStatus `json:"status"`
	OwnerID         ID            `json:"owner_id"`
	CreatedAt       Time          `json:"created_at"`
	UpdatedAt       Time          `json:"updated_at"`
}

func (p *Project) UnmarshalJSON(b []byte) error {
	type plain Project
	var raw struct {
		plain
		Name   string `json:"name"`
		UserID ID     `json:"user_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Project(raw.plain)
	p.Title = firstNonEmpty(p.Title, raw.Name)
	p.OwnerID = ID(firstNonEmpty(string(p.OwnerID), string(raw.UserID)))
	if p.TechnologyStack == nil {
		p.TechnologyStack = []string{}
	}
	return nil
}

// ProjectInput is the body of POST/PUT /projects.
type ProjectInput struct {
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	TechnologyStack []string      `json:"technology_stack"`
	Status          ProjectStatus `json:"status,omitempty"`
}

// SplitList splits a comma-separated list, trimming items and dropping
// empty ones. Order is preserved.
func SplitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
