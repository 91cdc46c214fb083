// Package tokenstore persists the client's Auth Token.
//
// The token lives in the local metadata table under the fixed key
// "access_token" (optionally sealed at rest), with its type and expiry kept
// alongside. At most one token is held: Save overwrites, Clear removes all
// three keys in one transaction. Reads are served from memory after the
// first load.
package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/socrates/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/socrates/internal/dbx"
	"golang.org/x/oauth2"
)

const (
	KeyAccessToken = "access_token"
	KeyTokenType   = "token_type"
	KeyTokenExpiry = "token_expiry"
)

// Sealer encrypts the token before it reaches disk.
type Sealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// Store is a write-through, in-memory cached token store. It is safe for
// concurrent use.
type Store struct {
	db     *sql.DB
	sealer Sealer

	mu     sync.RWMutex
	loaded bool
	token  *oauth2.Token
}

type Option func(*Store)

// WithSealer enables at-rest sealing of the access token.
func WithSealer(s Sealer) Option {
	return func(st *Store) { st.sealer = s }
}

func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Token returns the persisted token, or nil when none is stored.
func (s *Store) Token(ctx context.Context) (*oauth2.Token, error) {
	s.mu.RLock()
	if s.loaded {
		tok := copyToken(s.token)
		s.mu.RUnlock()
		return tok, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		tok, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		s.token, s.loaded = tok, true
	}
	return copyToken(s.token), nil
}

func (s *Store) load(ctx context.Context) (*oauth2.Token, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	raw, err := repo.Get(ctx, KeyAccessToken)
	if errors.Is(err, metadata.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if s.sealer != nil {
		if raw, err = s.sealer.Open(raw); err != nil {
			return nil, fmt.Errorf("open sealed token: %w", err)
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}

	tok := &oauth2.Token{AccessToken: string(raw), TokenType: "Bearer"}
	if tt, err := repo.Get(ctx, KeyTokenType); err == nil && len(tt) > 0 {
		tok.TokenType = string(tt)
	}
	if exp, err := repo.Get(ctx, KeyTokenExpiry); err == nil && len(exp) > 0 {
		if t, perr := time.Parse(time.RFC3339, string(exp)); perr == nil {
			tok.Expiry = t
		}
	}
	return tok, nil
}

// Save persists tok, replacing any previous token.
func (s *Store) Save(ctx context.Context, tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.New("empty access token")
	}

	value := []byte(tok.AccessToken)
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(value)
		if err != nil {
			return fmt.Errorf("seal token: %w", err)
		}
		value = sealed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyAccessToken, value); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyTokenType, []byte(tok.Type())); err != nil {
			return err
		}
		if tok.Expiry.IsZero() {
			return repo.Delete(ctx, KeyTokenExpiry)
		}
		return repo.Set(ctx, KeyTokenExpiry, []byte(tok.Expiry.UTC().Format(time.RFC3339)))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	s.token, s.loaded = copyToken(tok), true
	return nil
}

// Clear removes the persisted token. The in-memory copy is dropped even if
// the database write fails, so the client never keeps using a token it was
// asked to forget.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token, s.loaded = nil, true

	repo := metadata.NewSQLiteRepository(s.db)
	if err := repo.Delete(ctx, KeyAccessToken, KeyTokenType, KeyTokenExpiry); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func copyToken(t *oauth2.Token) *oauth2.Token {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
