package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/socrates/internal/client/models"
)

func esc(id models.ID) string { return url.PathEscape(string(id)) }

func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	raw, err := c.do(ctx, "GET", "/projects", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Project](raw, "projects")
}

func (c *Client) Project(ctx context.Context, id models.ID) (models.Project, error) {
	raw, err := c.do(ctx, "GET", "/projects/"+esc(id), nil)
	if err != nil {
		return models.Project{}, err
	}
	return decodeOne[models.Project](raw, "project")
}

func (c *Client) CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	raw, err := c.do(ctx, "POST", "/projects", in)
	if err != nil {
		return models.Project{}, err
	}
	return decodeOne[models.Project](raw, "project")
}

func (c *Client) UpdateProject(ctx context.Context, id models.ID, in models.ProjectInput) (models.Project, error) {
	raw, err := c.do(ctx, "PUT", "/projects/"+esc(id), in)
	if err != nil {
		return models.Project{}, err
	}
	return decodeOne[models.Project](raw, "project")
}

func (c *Client) DeleteProject(ctx context.Context, id models.ID) error {
	_, err := c.do(ctx, "DELETE", "/projects/"+esc(id), nil)
	return err
}

func (c *Client) Sessions(ctx context.Context) ([]models.Session, error) {
	raw, err := c.do(ctx, "GET", "/sessions", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Session](raw, "sessions")
}

func (c *Client) Session(ctx context.Context, id models.ID) (models.Session, error) {
	raw, err := c.do(ctx, "GET", "/sessions/"+esc(id), nil)
	if err != nil {
		return models.Session{}, err
	}
	return decodeOne[models.Session](raw, "session")
}

func (c *Client) CreateSession(ctx context.Context, in models.SessionInput) (models.Session, error) {
	raw, err := c.do(ctx, "POST", "/sessions", in)
	if err != nil {
		return models.Session{}, err
	}
	return decodeOne[models.Session](raw, "session")
}

func (c *Client) UpdateSession(ctx context.Context, id models.ID, in models.SessionInput) (models.Session, error) {
	raw, err := c.do(ctx, "PUT", "/sessions/"+esc(id), in)
	if err != nil {
		return models.Session{}, err
	}
	return decodeOne[models.Session](raw, "session")
}

func (c *Client) DeleteSession(ctx context.Context, id models.ID) error {
	_, err := c.do(ctx, "DELETE", "/sessions/"+esc(id), nil)
	return err
}

// ToggleSessionMode switches the conversation mode of a session.
func (c *Client) ToggleSessionMode(ctx context.Context, id models.ID, mode models.SessionMode) (models.Session, error) {
	raw, err := c.do(ctx, "POST", "/sessions/"+esc(id)+"/toggle-mode", map[string]models.SessionMode{"mode": mode})
	if err != nil {
		return models.Session{}, err
	}
	return decodeOne[models.Session](raw, "session")
}

func (c *Client) Messages(ctx context.Context, sessionID models.ID) ([]models.Message, error) {
	raw, err := c.do(ctx, "GET", "/sessions/"+esc(sessionID)+"/messages", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Message](raw, "messages")
}

// SendResult is the acknowledgement of a sent message. Assistant is set
// when the server replied synchronously.
type SendResult struct {
	User      models.Message
	Assistant *models.Message
}

// Messages returns the acknowledged records in display order.
func (r SendResult) Messages() []models.Message {
	if r.Assistant == nil {
		return []models.Message{r.User}
	}
	return []models.Message{r.User, *r.Assistant}
}

func (c *Client) SendMessage(ctx context.Context, sessionID models.ID, content string) (SendResult, error) {
	raw, err := c.do(ctx, "POST", "/sessions/"+esc(sessionID)+"/messages", models.MessageInput{
		Content: content,
		Role:    models.RoleUser,
	})
	if err != nil {
		return SendResult{}, err
	}
	return decodeSend(raw)
}

func decodeSend(raw []byte) (SendResult, error) {
	body := unwrap(raw)
	fields, ok := objectFields(body)
	if !ok {
		return SendResult{}, ErrUnrecognizedShape
	}

	um, paired := fields["user_message"]
	if !paired {
		msg, err := decodeOne[models.Message](body, "message")
		if err != nil {
			return SendResult{}, err
		}
		return SendResult{User: msg}, nil
	}

	var res SendResult
	if err := json.Unmarshal(um, &res.User); err != nil {
		return SendResult{}, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	if ar, ok := fields["assistant_response"]; ok && !isNull(ar) {
		var a models.Message
		if err := json.Unmarshal(ar, &a); err != nil {
			return SendResult{}, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		if a.Role == "" {
			a.Role = models.RoleAssistant
		}
		res.Assistant = &a
	}
	return res, nil
}

// InboxMessages lists messages across sessions for the inbox view.
func (c *Client) InboxMessages(ctx context.Context, filter models.InboxFilter) ([]models.Message, error) {
	if filter == "" {
		filter = models.InboxAll
	}
	path := "/messages?" + url.Values{"filter": {string(filter)}}.Encode()
	raw, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Message](raw, "messages")
}

func (c *Client) ArchiveMessage(ctx context.Context, id models.ID) error {
	_, err := c.do(ctx, "POST", "/messages/"+esc(id)+"/archive", nil)
	return err
}

func (c *Client) DeleteMessage(ctx context.Context, id models.ID) error {
	_, err := c.do(ctx, "DELETE", "/messages/"+esc(id), nil)
	return err
}
