package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/socrates/internal/client/api"
	"github.com/dmitrijs2005/socrates/internal/client/router"
)

// getSimpleText, getMultiline and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

// Register prompts for an account and signs in with it. On success the
// dashboard is shown.
func (a *App) Register(ctx context.Context) error {
	a.nav.Navigate(router.PathRegister)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.session.Register(ctx, email, string(password), name); err != nil {
		return authFailure("Registration failed", err)
	}

	a.nav.Navigate(router.PathDashboard)
	return nil
}

// Login prompts for credentials. On success the dashboard is shown.
func (a *App) Login(ctx context.Context) error {
	a.nav.Navigate(router.PathLogin)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return authFailure("Login failed", err)
	}

	a.log.Info(ctx, "signed in", "user", a.session.Snapshot().User.Email)
	a.nav.Navigate(router.PathDashboard)
	return nil
}

// Logout ends the session locally. The server call is best effort.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.nav.ForceLogin()
	return nil
}

func authFailure(msg string, err error) error {
	if d, ok := api.Detail(err); ok {
		return fmt.Errorf("%s: %s", msg, d)
	}
	if errors.Is(err, api.ErrUnavailable) {
		return fmt.Errorf("%s: server unavailable", msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
