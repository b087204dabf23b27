package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/trackit/internal/client/flows"
)

var errNoResetLink = errors.New("open a password reset link first")

// ResetPassword asks for the new password twice and submits it through the
// reset flow of the current screen.
func (a *App) ResetPassword(ctx context.Context) error {
	a.mu.Lock()
	flow := a.reset
	a.mu.Unlock()

	if flow == nil {
		return errNoResetLink
	}
	if !flow.LinkValid() {
		return flows.ErrInvalidLink
	}

	password, err := a.promptPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.promptPassword("Confirm new password")
	if err != nil {
		return err
	}

	out, err := flow.Submit(ctx, password, confirm)
	if err != nil {
		return err
	}
	say(out.Message)
	if !out.OK {
		return nil
	}
	return a.Open(ctx, out.Redirect)
}
