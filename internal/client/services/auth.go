// Package services holds the client use cases behind the REPL commands:
// authentication against the identity provider and the expense list.
package services

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/trackit/internal/client/flows"
	"github.com/dmitrijs2005/trackit/internal/client/identity"
	"github.com/dmitrijs2005/trackit/internal/client/session"
	"github.com/dmitrijs2005/trackit/internal/logging"
)

const (
	MsgWelcomeBack        = "Welcome back"
	MsgVerificationSent   = "Verification email has been sent. If you don't see it, please check your Spam."
	MsgPasswordResetSent  = "Password reset email sent!"
	MsgLoggedOut          = "You have successfully logged out"
	msgSomethingWrong     = "Something went wrong"
	msgUserInfoFailed     = "Failed to fetch user info"
	msgResendFailed       = "Failed to resend verification email"
	msgSessionNotSaved    = "Could not save the session on this device"
	msgMissingUserID      = "Account id missing from the provider response"
	msgLogoutNotPersisted = "Logged out, but the saved session could not be removed from this device"
)

var (
	ErrNotVerified    = &UserError{Message: "Your email is not verified. Please verify your email."}
	ErrNoPendingToken = &UserError{Message: "No token available for verification."}
)

// IdentityClient is the subset of the identity provider client used here.
type IdentityClient interface {
	Login(ctx context.Context, email, password string) identity.Result
	Register(ctx context.Context, email, password string) identity.Result
	SendVerificationEmail(ctx context.Context, idToken string) identity.Result
	GetUserData(ctx context.Context, idToken string) identity.Result
	SendPasswordResetEmail(ctx context.Context, email string) identity.Result
}

// SessionStore is implemented by *session.Store.
type SessionStore interface {
	Snapshot() session.Snapshot
	Login(ctx context.Context, c session.Credentials) error
	Register(ctx context.Context, c session.Credentials) error
	Logout(ctx context.Context) error
}

// PendingVerification is the token of an account that signed in or signed
// up but has not verified its email yet. It is only kept in memory.
type PendingVerification struct {
	Token string
	Email string
}

// AuthService defines the authentication operations of the login screen.
//
// Every method returns the message to show on success; a failure is an
// error whose text is fit for the user (usually *UserError).
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password, confirm string) (string, error)
	ResendVerification(ctx context.Context) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	Logout(ctx context.Context) (string, error)
	Pending() (PendingVerification, bool)
	Session() session.Snapshot
}

type authService struct {
	identity IdentityClient
	store    SessionStore
	logger   logging.Logger
	validate *validator.Validate

	mu      sync.Mutex
	pending *PendingVerification
}

func NewAuthService(idc IdentityClient, store SessionStore, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{identity: idc, store: store, logger: logger, validate: newValidator()}
}

type loginForm struct {
	Email    string `label:"Email" validate:"required,email"`
	Password string `label:"Password" validate:"required,min=6"`
}

type forgotForm struct {
	Email string `label:"Email" validate:"required,email"`
}

func (a *authService) setPending(p *PendingVerification) {
	a.mu.Lock()
	a.pending = p
	a.mu.Unlock()
}

func (a *authService) Pending() (PendingVerification, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		return PendingVerification{}, false
	}
	return *a.pending, true
}

func (a *authService) Session() session.Snapshot {
	return a.store.Snapshot()
}

func providerError(res identity.Result) error {
	if res.Message == "" {
		return userError(msgSomethingWrong)
	}
	return userError(res.Message)
}

// Login signs in and checks the account is verified. An unverified account
// is not stored as a session; its token is kept so the verification email
// can be resent.
func (a *authService) Login(ctx context.Context, email, password string) (string, error) {
	if err := a.validate.Struct(loginForm{Email: email, Password: password}); err != nil {
		return "", validationError(err)
	}

	res := a.identity.Login(ctx, email, password)
	if !res.OK {
		a.logger.Info(ctx, "login rejected", "reason", res.Message)
		return "", providerError(res)
	}

	user := a.identity.GetUserData(ctx, res.Token)
	if !user.OK || user.User == nil {
		a.logger.Warn(ctx, "user lookup failed after login", "reason", user.Message)
		return "", userError(msgUserInfoFailed)
	}

	if !user.User.EmailVerified {
		a.setPending(&PendingVerification{Token: res.Token, Email: email})
		return "", ErrNotVerified
	}

	err := a.store.Login(ctx, session.Credentials{
		Token:         res.Token,
		UserID:        user.User.LocalID,
		EmailVerified: true,
	})
	if err != nil {
		a.logger.Error(ctx, "session not persisted", "error", err)
		return "", userError(msgSessionNotSaved)
	}

	a.setPending(nil)
	return MsgWelcomeBack, nil
}

// Register creates the account (the provider sends the verification email)
// and records an unverified session.
func (a *authService) Register(ctx context.Context, email, password, confirm string) (string, error) {
	if err := a.validate.Struct(forgotForm{Email: email}); err != nil {
		return "", validationError(err)
	}
	if err := flows.ValidatePasswords(password, confirm); err != nil {
		return "", userError(err.Error())
	}

	res := a.identity.Register(ctx, email, password)
	if !res.OK {
		return "", providerError(res)
	}

	userID := res.UserID
	if userID == "" {
		if claims, err := identity.ParseClaims(res.Token); err == nil {
			userID = claims.UserID
		}
	}
	if userID == "" {
		return "", userError(msgMissingUserID)
	}

	a.setPending(&PendingVerification{Token: res.Token, Email: email})

	if err := a.store.Register(ctx, session.Credentials{Token: res.Token, UserID: userID}); err != nil {
		a.logger.Error(ctx, "session not persisted", "error", err)
		return "", userError(msgSessionNotSaved)
	}

	return MsgVerificationSent, nil
}

func (a *authService) ResendVerification(ctx context.Context) (string, error) {
	p, ok := a.Pending()
	if !ok || p.Token == "" {
		return "", ErrNoPendingToken
	}

	res := a.identity.SendVerificationEmail(ctx, p.Token)
	if !res.OK {
		if res.Message == "" {
			return "", userError(msgResendFailed)
		}
		return "", userError(res.Message)
	}
	return MsgVerificationSent, nil
}

func (a *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := a.validate.Struct(forgotForm{Email: email}); err != nil {
		return "", validationError(err)
	}

	res := a.identity.SendPasswordResetEmail(ctx, email)
	if !res.OK {
		return "", providerError(res)
	}
	return MsgPasswordResetSent, nil
}

// Logout drops the session and any pending verification token. The session
// is gone from memory even when removing it from disk fails.
func (a *authService) Logout(ctx context.Context) (string, error) {
	a.setPending(nil)

	if err := a.store.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout not persisted", "error", err)
		return "", userError(msgLogoutNotPersisted)
	}
	return MsgLoggedOut, nil
}
