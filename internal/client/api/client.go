package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/socrates/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxBodySize = 8 << 20
)

// TokenStore is the persisted credential the client reads on every request
// and clears on a 401.
type TokenStore interface {
	Token(ctx context.Context) (*oauth2.Token, error)
	Clear(ctx context.Context) error
}

type Client struct {
	baseURL   string
	healthURL string
	http      *http.Client
	tokens    TokenStore
	log       logging.Logger
	newID     func() string

	mu             sync.RWMutex
	onUnauthorized []func(context.Context)
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHealthURL sets the liveness endpoint, which lives outside the
// API base.
func WithHealthURL(u string) Option {
	return func(c *Client) { c.healthURL = u }
}

func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		tokens:  tokens,
		log:     logging.NewDiscard(),
		newID:   func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// OnUnauthorized registers fn to run after a 401 has cleared the token.
func (c *Client) OnUnauthorized(fn func(context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodDelete, path, nil, out)
}

// call is the verb path: out receives the value after {"data": ...}
// unwrapping.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(unwrap(raw), out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := c.newID()
	req.Header.Set(RequestIDHeader, reqID)

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "token read failed", "err", err, "request_id", reqID)
	}
	if tok != nil && tok.AccessToken != "" {
		tok.SetAuthHeader(req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w: %w", method, path, ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn(ctx, "unauthorized, dropping token", "method", method, "path", path, "request_id", reqID)
		c.handleUnauthorized(ctx)
		return nil, fmt.Errorf("%s %s: %w", method, path, &APIError{Status: resp.StatusCode, Detail: parseDetail(raw)})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: %w", method, path, &APIError{Status: resp.StatusCode, Detail: parseDetail(raw)})
	}
	return raw, nil
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	// The request context may already be done; the token must go regardless.
	clearCtx := context.WithoutCancel(ctx)
	if err := c.tokens.Clear(clearCtx); err != nil {
		c.log.Error(ctx, "clear token", "err", err)
	}

	c.mu.RLock()
	hooks := append([]func(context.Context){}, c.onUnauthorized...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn(clearCtx)
	}
}

// Health calls the liveness endpoint. It never sends credentials.
func (c *Client) Health(ctx context.Context) error {
	if c.healthURL == "" {
		return errors.New("health url not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set(RequestIDHeader, c.newID())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: health %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}
