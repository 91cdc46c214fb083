package router

import (
	"sync"

	"github.com/dmitrijs2005/socrates/internal/client/auth"
)

// StateFunc returns the current session snapshot.
type StateFunc func() auth.State

// Navigator holds the current location and its history.
type Navigator struct {
	guard *Guard
	state StateFunc

	mu      sync.Mutex
	current string
	history []string
}

func NewNavigator(g *Guard, state StateFunc) *Navigator {
	return &Navigator{guard: g, state: state, current: PathHome}
}

// Current returns the committed location.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Resolve re-evaluates the current location, following redirects.
func (n *Navigator) Resolve() Decision {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.resolveLocked(n.current)
}

// Navigate moves to location. A redirect replaces the requested location
// rather than adding it to history.
func (n *Navigator) Navigate(location string) Decision {
	n.mu.Lock()
	defer n.mu.Unlock()

	location = Clean(location)
	if location != n.current {
		n.history = append(n.history, n.current)
	}
	return n.resolveLocked(location)
}

// Back returns to the previous location, if any.
func (n *Navigator) Back() Decision {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.history) == 0 {
		return n.resolveLocked(n.current)
	}
	prev := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	return n.resolveLocked(prev)
}

// ForceLogin jumps to the login screen and drops history.
func (n *Navigator) ForceLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = PathLogin
	n.history = nil
}

func (n *Navigator) resolveLocked(location string) Decision {
	state := n.state()
	// Redirect chains are short: unknown -> "/" and protected -> "/login",
	// both of which render.
	for i := 0; i < 3; i++ {
		d := n.guard.Resolve(location, state)
		if d.Kind != Redirect {
			n.current = location
			return d
		}
		location = d.Location
	}
	n.current = PathHome
	return n.guard.Resolve(PathHome, state)
}
