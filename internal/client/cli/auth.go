package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trackit/internal/client/router"
	"github.com/dmitrijs2005/trackit/internal/client/services"
)

// Test seams for prompting.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

func (a *App) promptPassword(label string) (string, error) {
	pw, err := getPassword(a.out, label+": ")
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}

	msg, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	say(msg)
	return a.Open(ctx, router.PathMain)
}

func (a *App) Register(ctx context.Context) error {
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}
	if password != "" {
		_, label := services.PasswordStrength(password)
		say(fmt.Sprintf("Password strength: %s", label))
	}
	confirm, err := a.promptPassword("Confirm password")
	if err != nil {
		return err
	}

	msg, err := a.auth.Register(ctx, email, password, confirm)
	if err != nil {
		return err
	}
	say(msg)
	return nil
}

func (a *App) Forgot(ctx context.Context) error {
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	msg, err := a.auth.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	say(msg)
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	msg, err := a.auth.ResendVerification(ctx)
	if err != nil {
		return err
	}
	say(msg)
	return nil
}

// Logout ends the session, verified or not, and returns to /login even when
// clearing the persisted session failed.
func (a *App) Logout(ctx context.Context) error {
	if !a.auth.Session().LoggedIn {
		return errNotLoggedIn
	}
	msg, err := a.auth.Logout(ctx)
	if err != nil {
		a.logger.Error(ctx, "logout", "error", err)
		say(err.Error())
	} else {
		say(msg)
	}
	return a.Open(ctx, router.PathLogin)
}
