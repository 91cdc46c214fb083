package router

import "github.com/dmitrijs2005/socrates/internal/client/auth"

type Kind int

const (
	// Placeholder means the signed-in state is still being resolved.
	Placeholder Kind = iota
	Render
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Placeholder:
		return "placeholder"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

type Decision struct {
	Kind   Kind
	Route  Route
	Params map[string]string
	// Location is the redirect target for Redirect.
	Location string
}

type Guard struct {
	table *Table
}

func NewGuard(t *Table) *Guard {
	return &Guard{table: t}
}

// Resolve decides what to show for location under state. Unknown locations
// go home. Protected locations wait while loading and go to the login screen
// when signed out; the requested location is not remembered.
func (g *Guard) Resolve(location string, state auth.State) Decision {
	r, params, ok := g.table.Match(location)
	if !ok {
		return Decision{Kind: Redirect, Location: PathHome}
	}
	if !r.Protected {
		return Decision{Kind: Render, Route: r, Params: params}
	}

	switch state.Status {
	case auth.Loading:
		return Decision{Kind: Placeholder, Route: r, Params: params}
	case auth.Authenticated:
		return Decision{Kind: Render, Route: r, Params: params}
	default:
		return Decision{Kind: Redirect, Location: PathLogin}
	}
}
