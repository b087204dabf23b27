package flows

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/trackit/internal/client/identity"
	"github.com/dmitrijs2005/trackit/internal/client/router"
)

const (
	MsgEmailVerified      = "Email verified successfully"
	MsgVerificationFailed = "Email verification failed"
	MsgInvalidLink        = "The link is invalid or expired."
)

type VerifyState int

const (
	VerifyIdle VerifyState = iota
	Verifying
	Verified
	VerifyFailed
)

func (s VerifyState) String() string {
	switch s {
	case VerifyIdle:
		return "idle"
	case Verifying:
		return "verifying"
	case Verified:
		return "verified"
	case VerifyFailed:
		return "failed"
	}
	return fmt.Sprintf("VerifyState(%d)", int(s))
}

// Confirmer is the identity call the verification flow depends on.
type Confirmer interface {
	ConfirmEmailVerification(ctx context.Context, oobCode string) identity.Result
}

type VerifyStatus struct {
	State     VerifyState
	Message   string
	Remaining int
}

type VerifyOption func(*VerifyFlow)

// WithTickHandler is called with the seconds left after each countdown tick.
func WithTickHandler(fn func(remaining int)) VerifyOption {
	return func(f *VerifyFlow) { f.onTick = fn }
}

// WithRedirect is called once with the login path when the countdown ends.
func WithRedirect(fn func(path string)) VerifyOption {
	return func(f *VerifyFlow) { f.onRedirect = fn }
}

func WithTicker(factory TickerFactory) VerifyOption {
	return func(f *VerifyFlow) { f.newTicker = factory }
}

// VerifyFlow confirms an emailed verification code at most once.
type VerifyFlow struct {
	mu        sync.Mutex
	action    router.Action
	confirmer Confirmer
	status    VerifyStatus
	attempted bool
	closed    bool
	countdown *Countdown

	onTick     func(int)
	onRedirect func(string)
	newTicker  TickerFactory
}

func NewVerifyFlow(action router.Action, c Confirmer, opts ...VerifyOption) *VerifyFlow {
	f := &VerifyFlow{action: action, confirmer: c}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run confirms the code. Without a code, with another mode, after an earlier
// attempt or after Close it returns the current status without calling the
// provider. On success the redirect countdown starts and lives until it
// fires, Close is called, or ctx is done.
func (f *VerifyFlow) Run(ctx context.Context) VerifyStatus {
	f.mu.Lock()
	if f.closed || f.attempted {
		defer f.mu.Unlock()
		return f.status
	}
	if f.action.Kind != router.ActionVerifyEmail || f.action.OOBCode == "" {
		f.status = VerifyStatus{State: VerifyIdle, Message: MsgInvalidLink}
		defer f.mu.Unlock()
		return f.status
	}
	f.attempted = true
	f.status = VerifyStatus{State: Verifying}
	f.mu.Unlock()

	res := f.confirmer.ConfirmEmailVerification(ctx, f.action.OOBCode)

	f.mu.Lock()
	defer f.mu.Unlock()

	if !res.OK {
		f.status = VerifyStatus{State: VerifyFailed, Message: MsgVerificationFailed}
		return f.status
	}

	f.status = VerifyStatus{State: Verified, Message: MsgEmailVerified, Remaining: DefaultCountdownSeconds}
	if f.closed {
		return f.status
	}
	f.countdown = NewCountdown(DefaultCountdownSeconds, f.tick, f.redirect, f.newTicker)
	f.countdown.Start(ctx)
	return f.status
}

func (f *VerifyFlow) tick(remaining int) {
	if f.onTick != nil {
		f.onTick(remaining)
	}
}

func (f *VerifyFlow) redirect() {
	if f.onRedirect != nil {
		f.onRedirect(router.PathLogin)
	}
}

// Status reports the current state; once verified, Remaining counts down
// with the redirect timer.
func (f *VerifyFlow) Status() VerifyStatus {
	f.mu.Lock()
	st, cd := f.status, f.countdown
	f.mu.Unlock()

	// the countdown lock is taken outside f.mu; tick callbacks hold it
	if cd != nil {
		st.Remaining = cd.Remaining()
	}
	return st
}

// Close stops the countdown, if any. It is safe to call more than once.
func (f *VerifyFlow) Close() {
	f.mu.Lock()
	f.closed = true
	cd := f.countdown
	f.mu.Unlock()

	if cd != nil {
		cd.Stop()
	}
}
