package flows

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/trackit/internal/client/identity"
)

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time)}
}

func (f *fakeTicker) Chan() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()                  { f.stopped.Store(true) }

func (f *fakeTicker) factory() TickerFactory {
	return func(time.Duration) Ticker { return f }
}

// fire delivers one tick, reporting false if nobody was listening.
func (f *fakeTicker) fire() bool {
	select {
	case f.ch <- time.Now():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

type fakeIdentity struct {
	mu           sync.Mutex
	result       identity.Result
	confirmCalls int
	resetCalls   int
	lastCode     string
	lastPassword string
	block        chan struct{}
}

func (f *fakeIdentity) ConfirmEmailVerification(_ context.Context, code string) identity.Result {
	f.mu.Lock()
	f.confirmCalls++
	f.lastCode = code
	res := f.result
	f.mu.Unlock()
	return res
}

func (f *fakeIdentity) ConfirmPasswordReset(_ context.Context, code, pw string) identity.Result {
	f.mu.Lock()
	f.resetCalls++
	f.lastCode = code
	f.lastPassword = pw
	res, block := f.result, f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return res
}

func (f *fakeIdentity) calls() (confirm, reset int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmCalls, f.resetCalls
}
