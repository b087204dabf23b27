package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/trackit/internal/client/datastore"
	"github.com/dmitrijs2005/trackit/internal/client/flows"
	"github.com/dmitrijs2005/trackit/internal/client/router"
	"github.com/dmitrijs2005/trackit/internal/client/services"
)

const msgSessionExpired = "Your session has expired. Please log in again."

var (
	errSessionExpired = &services.UserError{Message: msgSessionExpired}
	errNotLoggedIn    = &services.UserError{Message: "You are not logged in."}
)

// userMessage turns err into the line shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, datastore.ErrUnauthorized):
		return msgSessionExpired
	case errors.Is(err, datastore.ErrNotAuthenticated):
		return datastore.MsgNotAuthenticated
	case errors.Is(err, flows.ErrInvalidLink),
		errors.Is(err, flows.ErrPasswordShort),
		errors.Is(err, flows.ErrPasswordsDiffer):
		return flows.ResetMessage(err)
	}
	return err.Error()
}

// expire ends a session the data store rejected and returns to /login.
// Callers hold a.mu.
func (a *App) expire(ctx context.Context, cause error) error {
	a.logger.Warn(ctx, "data store rejected the session", "error", cause)
	if _, err := a.auth.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout after rejected session", "error", err)
	}
	if err := a.navigate(ctx, router.PathLogin); err != nil {
		return err
	}
	return errSessionExpired
}

// expenseFailure reports err, logging the user out first when the data
// store rejected the token. Callers do not hold a.mu.
func (a *App) expenseFailure(ctx context.Context, err error) error {
	if !errors.Is(err, datastore.ErrUnauthorized) {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expire(ctx, err)
}
