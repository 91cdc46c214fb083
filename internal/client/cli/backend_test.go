package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/socrates/internal/client/config"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// backend is a scripted Socrates API. Handlers can be replaced per test.
type backend struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	hits     map[string]int
	failWith map[string]int
	lastBody map[string]string
	blocked  map[string]chan struct{}
	aborted  map[string]int
}

const testUser = `{"id": 7, "email": "ada@example.com", "name": "Ada"}`

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{t: t, hits: map[string]int{}, failWith: map[string]int{}, lastBody: map[string]string{},
		blocked: map[string]chan struct{}{}, aborted: map[string]int{}}

	r := mux.NewRouter()
	r.HandleFunc("/health", b.json("health", `{"status":"ok"}`))
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", b.json("login", `{"access_token":"tok-1","token_type":"bearer","user":`+testUser+`}`)).Methods(http.MethodPost)
	api.HandleFunc("/register", b.json("register", testUser)).Methods(http.MethodPost)
	api.HandleFunc("/logout", b.json("logout", `{}`)).Methods(http.MethodPost)
	api.HandleFunc("/profile", b.json("profile", `{"data":{"user":`+testUser+`}}`)).Methods(http.MethodGet)
	api.HandleFunc("/projects", b.json("projects", `{"projects":[{"id":1,"title":"Go","status":"active","technology_stack":["go"]}],"total":1}`)).Methods(http.MethodGet)
	api.HandleFunc("/projects", b.json("create-project", `{"id":2,"title":"Rust","status":"planning"}`)).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}", b.json("project", `{"id":1,"title":"Go","status":"active"}`)).Methods(http.MethodGet)
	api.HandleFunc("/sessions", b.json("sessions", `[{"id":10,"project_id":1,"title":"Intro","mode":"chat","message_count":2}]`)).Methods(http.MethodGet)
	api.HandleFunc("/sessions", b.json("create-session", `{"id":11,"project_id":1,"title":"Deep","mode":"teaching"}`)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", b.json("session", `{"id":10,"project_id":1,"title":"Intro","mode":"chat"}`)).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/messages", b.json("session-messages", `[{"id":100,"session_id":10,"role":"user","content":"hi"}]`)).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/messages", b.json("send", `{"user_message":{"id":101,"session_id":10,"role":"user","content":"why?"},"assistant_response":{"id":102,"session_id":10,"content":"Why do you ask?"}}`)).Methods(http.MethodPost)
	api.HandleFunc("/messages", b.json("inbox", `{"messages":[{"id":200,"session_id":10,"role":"assistant","content":"Welcome"}]}`)).Methods(http.MethodGet)
	api.HandleFunc("/messages/{id}/archive", b.json("archive", `{}`)).Methods(http.MethodPost)
	api.HandleFunc("/profile/settings", b.json("settings", `{"settings":{"theme":"dark","llm_model":"claude-3-opus","temperature":0.5,"max_tokens":1000}}`)).Methods(http.MethodGet)
	api.HandleFunc("/profile/settings", b.json("save-settings", `{}`)).Methods(http.MethodPut)

	b.srv = httptest.NewServer(r)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) json(name, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.hits[name]++
		b.lastBody[name] = string(raw)
		status := b.failWith[name]
		gate := b.blocked[name]
		b.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				b.mu.Lock()
				b.aborted[name]++
				b.mu.Unlock()
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if status != 0 {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": http.StatusText(status)})
			return
		}
		_, _ = io.WriteString(w, body)
	}
}

func (b *backend) fail(name string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failWith[name] = status
}

// block holds requests to name until the returned func is called or the
// client gives up.
func (b *backend) block(name string) (release func()) {
	gate := make(chan struct{})
	b.mu.Lock()
	b.blocked[name] = gate
	b.mu.Unlock()
	var once sync.Once
	release = func() { once.Do(func() { close(gate) }) }
	b.t.Cleanup(release)
	return release
}

func (b *backend) abortedCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.aborted[name]
}

func (b *backend) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[name]
}

func (b *backend) body(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody[name]
}

func (b *backend) config() *config.Config {
	return &config.Config{
		APIBaseURL:  b.srv.URL + "/api",
		HealthURL:   b.srv.URL + "/health",
		StateDir:    config.InMemory,
		BannerDelay: time.Hour,
		LogLevel:    "error",
	}
}

// newTestApp builds an App over b with in-memory state. input feeds both
// the REPL and the prompts.
func newTestApp(t *testing.T, b *backend, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a, err := NewApp(context.Background(), b.config(), strings.NewReader(input), &out)
	require.NoError(t, err)
	a.mountWait = 5 * time.Second
	t.Cleanup(func() { _ = a.Close() })
	return a, &out
}

// stubPrompts answers text prompts in order and returns pw for passwords.
func stubPrompts(t *testing.T, answers []string, pw string) {
	t.Helper()
	origST, origML, origPW := getSimpleText, getMultiline, getPassword
	t.Cleanup(func() {
		getSimpleText, getMultiline, getPassword = origST, origML, origPW
	})

	var mu sync.Mutex
	next := func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(answers) == 0 {
			return "", io.EOF
		}
		s := answers[0]
		answers = answers[1:]
		return s, nil
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
}

