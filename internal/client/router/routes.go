// Package router maps client locations to screens and gates the protected
// ones on the signed-in state.
package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

const (
	RouteHome       = "home"
	RouteLogin      = "login"
	RouteRegister   = "register"
	RouteDashboard  = "dashboard"
	RouteProjects   = "projects"
	RouteProject    = "project"
	RouteSession    = "session"
	RouteMessages   = "messages"
	RouteSettings   = "settings"
	ParamProjectID  = "projectId"
	ParamSessionID  = "sessionId"
	PathHome        = "/"
	PathLogin       = "/login"
	PathDashboard   = "/dashboard"
	PathProjects    = "/projects"
	PathMessages    = "/messages"
	PathSettings    = "/settings"
	PathRegister    = "/register"
	pathProjectTmpl = "/projects/{" + ParamProjectID + "}"
	pathSessionTmpl = "/sessions/{" + ParamSessionID + "}"
)

// Route is one entry of the location table.
type Route struct {
	Name      string
	Template  string
	Protected bool
}

// Routes is the full table in match order.
var Routes = []Route{
	{RouteHome, PathHome, false},
	{RouteLogin, PathLogin, false},
	{RouteRegister, PathRegister, false},
	{RouteDashboard, PathDashboard, true},
	{RouteProjects, PathProjects, true},
	{RouteProject, pathProjectTmpl, true},
	{RouteSession, pathSessionTmpl, true},
	{RouteMessages, PathMessages, true},
	{RouteSettings, PathSettings, true},
}

// Table matches locations against Routes.
type Table struct {
	mux    *mux.Router
	byName map[string]Route
}

func NewTable() *Table {
	t := &Table{mux: mux.NewRouter(), byName: make(map[string]Route, len(Routes))}
	for _, r := range Routes {
		t.mux.Path(r.Template).Methods(http.MethodGet).Name(r.Name)
		t.byName[r.Name] = r
	}
	return t
}

// Match resolves a location. The query string is ignored.
func (t *Table) Match(location string) (Route, map[string]string, bool) {
	p := Clean(location)

	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: p}}
	var m mux.RouteMatch
	if !t.mux.Match(req, &m) || m.Route == nil {
		return Route{}, nil, false
	}
	r, ok := t.byName[m.Route.GetName()]
	if !ok {
		return Route{}, nil, false
	}
	params := map[string]string{}
	for k, v := range m.Vars {
		if u, err := url.PathUnescape(v); err == nil {
			v = u
		}
		params[k] = v
	}
	return r, params, true
}

// URL builds the location of a named route.
func (t *Table) URL(name string, pairs ...string) (string, error) {
	u, err := t.mux.Get(name).URLPath(pairs...)
	if err != nil {
		return "", err
	}
	return u.Path, nil
}

// Clean normalizes a location: leading slash, no trailing slash, no query.
func Clean(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	location = strings.TrimSpace(location)
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	if len(location) > 1 {
		location = strings.TrimRight(location, "/")
		if location == "" {
			location = "/"
		}
	}
	return location
}

func ProjectPath(id string) string { return "/projects/" + url.PathEscape(id) }
func SessionPath(id string) string { return "/sessions/" + url.PathEscape(id) }
