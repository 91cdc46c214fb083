package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/socrates/internal/client/models"
	"golang.org/x/oauth2"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Username mirrors Email; the backend authenticates by username.
	Username string `json:"username,omitempty"`
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
}

// LoginResult is the normalized login payload.
type LoginResult struct {
	Token *oauth2.Token
	User  models.User
}

var now = time.Now

// Register creates the account. Any 2xx reply counts as success and its
// body is ignored; the user record comes from the login that follows.
func (c *Client) Register(ctx context.Context, email, password, name string) error {
	_, err := c.do(ctx, "POST", "/register", RegisterInput{
		Email: email, Password: password, Name: name, Username: name,
	})
	return err
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	raw, err := c.do(ctx, "POST", "/login", Credentials{Email: email, Password: password, Username: email})
	if err != nil {
		return LoginResult{}, err
	}
	return decodeLogin(raw, now())
}

// Logout notifies the server. The response body is ignored.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, "POST", "/logout", nil)
	return err
}

type loginFields struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	User        json.RawMessage `json:"user"`
}

// decodeLogin accepts the nested {"data": {access_token, user_id, ...}} form
// and the flat {access_token, user} form. Nested wins when both are present.
func decodeLogin(raw []byte, at time.Time) (LoginResult, error) {
	fields, ok := objectFields(raw)
	if !ok {
		return LoginResult{}, ErrUnrecognizedShape
	}

	body := raw
	if data, ok := fields["data"]; ok {
		if _, isObj := objectFields(data); isObj {
			var inner loginFields
			if err := json.Unmarshal(data, &inner); err == nil && inner.AccessToken != "" {
				body = data
			}
		}
	}

	var lf loginFields
	if err := json.Unmarshal(body, &lf); err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	if strings.TrimSpace(lf.AccessToken) == "" {
		return LoginResult{}, fmt.Errorf("%w: missing access_token", ErrUnrecognizedShape)
	}

	userRaw := []byte(body)
	if _, isObj := objectFields(lf.User); isObj {
		userRaw = lf.User
	}
	var user models.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = models.Time{Time: at}
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = models.Time{Time: at}
	}

	tok := &oauth2.Token{AccessToken: lf.AccessToken, TokenType: lf.TokenType}
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}
	if lf.ExpiresIn > 0 {
		tok.Expiry = at.Add(time.Duration(lf.ExpiresIn) * time.Second)
	}
	return LoginResult{Token: tok, User: user}, nil
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	raw, err := c.do(ctx, "GET", "/profile", nil)
	if err != nil {
		return models.User{}, err
	}
	return decodeOne[models.User](raw, "user")
}

func (c *Client) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (models.User, error) {
	raw, err := c.do(ctx, "PUT", "/profile", in)
	if err != nil {
		return models.User{}, err
	}
	return decodeOne[models.User](raw, "user")
}

func (c *Client) Settings(ctx context.Context) (models.Settings, error) {
	raw, err := c.do(ctx, "GET", "/profile/settings", nil)
	if err != nil {
		return models.Settings{}, err
	}
	return decodeOne[models.Settings](raw, "settings")
}

// UpdateSettings replaces the settings resource. The server echo is not
// required; when the body is empty, null or {} the submitted value is
// returned. Any other body must decode as settings.
func (c *Client) UpdateSettings(ctx context.Context, s models.Settings) (models.Settings, error) {
	raw, err := c.do(ctx, "PUT", "/profile/settings", s)
	if err != nil {
		return models.Settings{}, err
	}
	if isNull(raw) {
		return s, nil
	}
	if m, ok := objectFields(raw); ok && len(m) == 0 {
		return s, nil
	}
	return decodeOne[models.Settings](raw, "settings")
}
