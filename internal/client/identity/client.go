package identity

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/trackit/internal/logging"
)

const (
	DefaultEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts"
	DefaultTimeout  = 15 * time.Second

	maxResponseBytes = 1 << 20
)

// Client talks to the identity provider with a fixed API key.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	logger     logging.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(endpoint, apiKey string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		// never mutate a caller-supplied client
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

func failure(err error) Result {
	return Result{OK: false, Message: FormatError(err)}
}

// Login exchanges email and password for an identity token.
func (c *Client) Login(ctx context.Context, email, password string) Result {
	var resp tokenResponse
	err := c.post(ctx, opSignIn, credentialsRequest{Email: email, Password: password, ReturnSecureToken: true}, &resp)
	if err != nil {
		return failure(err)
	}
	return Result{OK: true, Token: resp.IDToken, UserID: resp.LocalID}
}

// Register creates the account and then asks the provider to send the
// verification email. A failed send does not fail the registration.
func (c *Client) Register(ctx context.Context, email, password string) Result {
	var resp tokenResponse
	err := c.post(ctx, opSignUp, credentialsRequest{Email: email, Password: password, ReturnSecureToken: true}, &resp)
	if err != nil {
		return failure(err)
	}

	if sent := c.SendVerificationEmail(ctx, resp.IDToken); !sent.OK {
		c.logger.Warn(ctx, "verification email not sent after sign-up", "reason", sent.Message)
	}

	return Result{OK: true, Token: resp.IDToken, UserID: resp.LocalID}
}

func (c *Client) SendVerificationEmail(ctx context.Context, idToken string) Result {
	if err := c.post(ctx, opSendOobCode, oobCodeRequest{RequestType: requestTypeVerifyEmail, IDToken: idToken}, nil); err != nil {
		return failure(err)
	}
	return Result{OK: true}
}

func (c *Client) ConfirmEmailVerification(ctx context.Context, oobCode string) Result {
	if err := c.post(ctx, opUpdate, confirmRequest{OOBCode: oobCode}, nil); err != nil {
		return failure(err)
	}
	return Result{OK: true}
}

// GetUserData looks up the account behind idToken; the returned User carries
// the emailVerified flag.
func (c *Client) GetUserData(ctx context.Context, idToken string) Result {
	var resp lookupResponse
	if err := c.post(ctx, opLookup, lookupRequest{IDToken: idToken}, &resp); err != nil {
		return failure(err)
	}
	if len(resp.Users) == 0 {
		return failure(ErrUserNotFound)
	}
	user := resp.Users[0]
	return Result{OK: true, UserID: user.LocalID, User: &user}
}

func (c *Client) SendPasswordResetEmail(ctx context.Context, email string) Result {
	if err := c.post(ctx, opSendOobCode, oobCodeRequest{RequestType: requestTypePasswordReset, Email: email}, nil); err != nil {
		return failure(err)
	}
	return Result{OK: true}
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) Result {
	if err := c.post(ctx, opResetPassword, resetPasswordRequest{OOBCode: oobCode, NewPassword: newPassword}, nil); err != nil {
		return failure(err)
	}
	return Result{OK: true, Message: passwordResetMessage}
}
