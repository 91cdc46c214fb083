package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/socrates/internal/client/models"
	"github.com/dmitrijs2005/socrates/internal/client/router"
	"github.com/dmitrijs2005/socrates/internal/client/views"
)

var ErrNotHere = errors.New("command is not available on this screen")

// Filter narrows the projects list or switches the inbox filter.
func (a *App) Filter(ctx context.Context, value string) error {
	switch v := a.current().(type) {
	case *views.Projects:
		return v.SetFilter(views.ProjectFilter(strings.ToLower(value)))
	case *views.Inbox:
		return v.SetFilter(models.InboxFilter(strings.ToLower(value)))
	}
	return ErrNotHere
}

// NewItem runs the creation form of the current screen: a project on the
// dashboard and projects list, a session on a project page.
func (a *App) NewItem(ctx context.Context) error {
	switch v := a.current().(type) {
	case *views.Dashboard:
		return a.fillProject(ctx, v.Create)
	case *views.Projects:
		return a.fillProject(ctx, v.Create)
	case *views.ProjectDetail:
		return a.fillSession(ctx, v.Create)
	}
	return ErrNotHere
}

func (a *App) fillProject(ctx context.Context, f *views.ProjectForm) error {
	f.Open()
	defer f.Close()

	title, err := getSimpleText(a.reader, "Project title", a.out)
	if err != nil {
		return err
	}
	desc, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	stack, err := getSimpleText(a.reader, "Technologies (comma separated)", a.out)
	if err != nil {
		return err
	}
	if err := errors.Join(f.SetTitle(title), f.SetDescription(desc), f.SetTechStack(stack)); err != nil {
		return err
	}

	p, err := f.Submit(ctx)
	if err != nil {
		return formFailure(f.FormError(), err)
	}
	printlnFn("Created project", p.ID)
	return nil
}

func (a *App) fillSession(ctx context.Context, f *views.SessionForm) error {
	f.Open()
	defer f.Close()

	title, err := getSimpleText(a.reader, "Session title", a.out)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Mode")
	for _, m := range models.Modes {
		fmt.Fprintf(&b, "\n  %s: %s", m.Mode, m.Description)
	}
	b.WriteString("\n(empty for " + string(f.Mode()) + ")")
	mode, err := getSimpleText(a.reader, b.String(), a.out)
	if err != nil {
		return err
	}
	if mode != "" {
		if err := f.SetMode(models.SessionMode(strings.ToLower(mode))); err != nil {
			return err
		}
	}

	role, err := getMultiline(a.reader, "Role description", a.out)
	if err != nil {
		return err
	}
	if err := errors.Join(f.SetTitle(title), f.SetRoleDescription(role)); err != nil {
		return err
	}

	s, err := f.Submit(ctx)
	if err != nil {
		return formFailure(f.FormError(), err)
	}
	printlnFn("Created session", s.ID)
	return nil
}

func formFailure(msg string, err error) error {
	if msg == "" {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Open follows an item on the current screen to its own page.
func (a *App) Open(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id", views.ErrMissingParam)
	}
	switch v := a.current().(type) {
	case *views.Dashboard, *views.Projects:
		a.nav.Navigate(router.ProjectPath(id))
		return nil
	case *views.ProjectDetail:
		a.nav.Navigate(router.SessionPath(id))
		return nil
	case *views.Inbox:
		loc, err := v.Open(models.ID(id))
		if err != nil {
			return err
		}
		a.nav.Navigate(loc)
		return nil
	}
	return ErrNotHere
}

// Send posts a chat message in the open session.
func (a *App) Send(ctx context.Context, text string) error {
	v, ok := a.current().(*views.Chat)
	if !ok {
		return ErrNotHere
	}
	return v.Send(ctx, text)
}

// SwitchMode changes the open session's conversation mode.
func (a *App) SwitchMode(ctx context.Context, mode string) error {
	v, ok := a.current().(*views.Chat)
	if !ok {
		return ErrNotHere
	}
	return v.ToggleMode(ctx, models.SessionMode(strings.ToLower(mode)))
}

// Archive and Delete act on an inbox message.
func (a *App) Archive(ctx context.Context, id string) error {
	v, ok := a.current().(*views.Inbox)
	if !ok {
		return ErrNotHere
	}
	return v.Archive(ctx, models.ID(id))
}

func (a *App) Delete(ctx context.Context, id string) error {
	v, ok := a.current().(*views.Inbox)
	if !ok {
		return ErrNotHere
	}
	return v.Delete(ctx, models.ID(id))
}

// SetOption edits one field on the settings screen. Numeric values are
// clamped and the stored value is echoed back.
func (a *App) SetOption(ctx context.Context, name, value string) error {
	v, ok := a.current().(*views.Settings)
	if !ok {
		return ErrNotHere
	}

	switch name {
	case "theme":
		return v.SetTheme(value)
	case "model":
		return v.SetModel(value)
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: temperature %q", views.ErrInvalidInput, value)
		}
		printlnFn("temperature =", v.SetTemperature(f))
	case "max-tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: max tokens %q", views.ErrInvalidInput, value)
		}
		printlnFn("max tokens =", v.SetMaxTokens(n))
	default:
		return fmt.Errorf("%w: unknown setting %q", views.ErrInvalidInput, name)
	}
	return nil
}

// Save stores the settings screen.
func (a *App) Save(ctx context.Context) error {
	v, ok := a.current().(*views.Settings)
	if !ok {
		return ErrNotHere
	}
	return v.Save(ctx)
}
