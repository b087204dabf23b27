package flows

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/trackit/internal/client/identity"
	"github.com/dmitrijs2005/trackit/internal/client/router"
)

const MinPasswordLength = 6

var (
	ErrBusy            = errors.New("a request is already in progress")
	ErrInvalidLink     = errors.New("invalid or expired reset link")
	ErrPasswordShort   = errors.New("password too short")
	ErrPasswordsDiffer = errors.New("passwords do not match")
)

const (
	MsgPasswordReset    = "Password successfully reset!"
	MsgResetLinkInvalid = "Invalid or expired reset link"
	MsgPasswordShort    = "Password must be at least 6 characters"
	MsgPasswordsDiffer  = "Passwords do not match"
	msgSomethingWrong   = "Something went wrong"
)

var resetMessages = []struct {
	err error
	msg string
}{
	{ErrInvalidLink, MsgResetLinkInvalid},
	{ErrPasswordShort, MsgPasswordShort},
	{ErrPasswordsDiffer, MsgPasswordsDiffer},
}

// ResetMessage returns the text the reset screen shows for err. Errors it
// does not know are shown as is.
func ResetMessage(err error) string {
	for _, m := range resetMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}

type Resetter interface {
	ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) identity.Result
}

// ResetOutcome is what the reset screen shows after a submission. Redirect
// is set only on success.
type ResetOutcome struct {
	OK       bool
	Message  string
	Redirect string
}

type ResetFlow struct {
	mu       sync.Mutex
	oobCode  string
	resetter Resetter
	loading  bool
}

func NewResetFlow(action router.Action, r Resetter) *ResetFlow {
	return &ResetFlow{oobCode: action.OOBCode, resetter: r}
}

func (f *ResetFlow) LinkValid() bool { return f.oobCode != "" }

// ValidatePasswords applies the local rules checked before any provider
// call.
func ValidatePasswords(password, confirm string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordShort
	}
	if password != confirm {
		return ErrPasswordsDiffer
	}
	return nil
}

// Submit sets the new password. Local validation failures and provider
// rejections come back as a non-OK outcome; the only error is ErrBusy, for a
// submission overlapping one still in flight.
func (f *ResetFlow) Submit(ctx context.Context, password, confirm string) (ResetOutcome, error) {
	if !f.LinkValid() {
		return ResetOutcome{Message: MsgResetLinkInvalid}, nil
	}
	if err := ValidatePasswords(password, confirm); err != nil {
		return ResetOutcome{Message: ResetMessage(err)}, nil
	}

	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return ResetOutcome{}, ErrBusy
	}
	f.loading = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	res := f.resetter.ConfirmPasswordReset(ctx, f.oobCode, password)
	if !res.OK {
		msg := res.Message
		if msg == "" {
			msg = msgSomethingWrong
		}
		return ResetOutcome{Message: msg}, nil
	}
	return ResetOutcome{OK: true, Message: MsgPasswordReset, Redirect: router.PathLogin}, nil
}
