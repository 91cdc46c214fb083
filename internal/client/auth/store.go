package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/socrates/internal/client/api"
	"github.com/dmitrijs2005/socrates/internal/client/models"
	"github.com/dmitrijs2005/socrates/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

var ErrEmptyCredentials = errors.New("email and password are required")

// API is the subset of the request client the store drives.
type API interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	Register(ctx context.Context, email, password, name string) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (models.User, error)
}

type TokenStore interface {
	Token(ctx context.Context) (*oauth2.Token, error)
	Save(ctx context.Context, tok *oauth2.Token) error
	Clear(ctx context.Context) error
}

type Store struct {
	api    API
	tokens TokenStore
	log    logging.Logger
	now    func() time.Time

	mu        sync.RWMutex
	state     State
	listeners []func(State)
}

func NewStore(a API, tokens TokenStore, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewDiscard()
	}
	return &Store{
		api:    a,
		tokens: tokens,
		log:    log,
		now:    time.Now,
		state:  State{Status: Loading},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// OnChange subscribes fn to every transition. fn runs synchronously after
// the new state is visible.
func (s *Store) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) set(st State) {
	s.mu.Lock()
	s.state = st
	ls := append([]func(State){}, s.listeners...)
	s.mu.Unlock()

	snap := st.clone()
	for _, fn := range ls {
		fn(snap)
	}
}

func (s *Store) signedIn(u models.User) {
	s.set(State{Status: Authenticated, User: &u})
}

func (s *Store) signedOut() {
	s.set(State{Status: Unauthenticated})
}

// Init resolves the start-up state. The store reports Loading until it
// returns.
func (s *Store) Init(ctx context.Context) State {
	s.set(State{Status: Loading})

	tok, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "read stored token", "err", err)
	}
	if tok == nil || tok.AccessToken == "" {
		s.signedOut()
		return s.Snapshot()
	}

	if expired(tok, s.now()) {
		s.log.Info(ctx, "stored token expired")
		s.dropToken(ctx)
		s.signedOut()
		return s.Snapshot()
	}

	u, err := s.api.Profile(ctx)
	if err != nil {
		s.log.Info(ctx, "profile check failed", "err", err)
		s.dropToken(ctx)
		s.signedOut()
		return s.Snapshot()
	}
	s.signedIn(u)
	return s.Snapshot()
}

// Login authenticates and persists the token, replacing any held one.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrEmptyCredentials
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.tokens.Save(ctx, res.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	u := res.User
	if u.Email == "" {
		u.Email = email
	}
	s.signedIn(u)
	s.log.Info(ctx, "signed in", "user_id", u.ID.String())
	return nil
}

// Register creates the account and signs in with the same credentials; the
// server does not issue a token on registration.
func (s *Store) Register(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		return ErrEmptyCredentials
	}
	if err := s.api.Register(ctx, email, password, name); err != nil {
		return err
	}
	return s.Login(ctx, email, password)
}

// Logout forgets the token and the user first, then tells the server. A
// failed server call is logged, never returned.
func (s *Store) Logout(ctx context.Context) {
	s.dropToken(ctx)
	s.signedOut()

	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "server logout failed", "err", err)
	}
}

// Refresh re-reads the profile of an authenticated user.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.Snapshot().Authenticated() {
		return nil
	}
	u, err := s.api.Profile(ctx)
	if err != nil {
		return err
	}
	s.signedIn(u)
	return nil
}

// Invalidate drops the user after the server rejected the token. The request
// client has already cleared it.
func (s *Store) Invalidate() {
	if s.Snapshot().Status == Unauthenticated {
		return
	}
	s.signedOut()
}

func (s *Store) dropToken(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Error(ctx, "clear token", "err", err)
	}
}

// expired reports whether tok is past its expiry. The JWT exp claim is
// read without verifying the signature; the token record's own expiry is the
// fallback. Opaque tokens without either never expire client-side.
func expired(tok *oauth2.Token, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, &claims); err == nil && claims.ExpiresAt != nil {
		return !now.Before(claims.ExpiresAt.Time)
	}
	if !tok.Expiry.IsZero() {
		return !now.Before(tok.Expiry)
	}
	return false
}
