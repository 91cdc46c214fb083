// Package auth holds the signed-in user for the lifetime of the process.
//
// The Store publishes immutable State snapshots. Only its transitions write:
// Init, Login, Register, Logout, Refresh and Invalidate. The persisted token
// alone decides whether a process starts signed in.
package auth

import "github.com/dmitrijs2005/socrates/internal/client/models"

type Status int

const (
	Loading Status = iota
	Authenticated
	Unauthenticated
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// State is a point-in-time view of the session. User is nil unless Status
// is Authenticated.
type State struct {
	Status Status
	User   *models.User
}

func (s State) Authenticated() bool { return s.Status == Authenticated }

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
