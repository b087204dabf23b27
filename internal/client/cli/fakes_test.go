package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/trackit/internal/client/flows"
	"github.com/dmitrijs2005/trackit/internal/client/identity"
	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/dmitrijs2005/trackit/internal/client/services"
	"github.com/dmitrijs2005/trackit/internal/client/session"
)

// captureOutput replaces printlnFn for the test and returns a function
// reporting everything printed so far.
func captureOutput(t *testing.T) func() string {
	t.Helper()
	var mu sync.Mutex
	var b strings.Builder

	old := printlnFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return fmt.Fprintln(&b, a...)
	}
	t.Cleanup(func() { printlnFn = old })

	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return b.String()
	}
}

// stubPasswords makes getPassword return answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := getPassword
	var i int
	getPassword = func(io.Writer, string) ([]byte, error) {
		if i >= len(answers) {
			return nil, io.EOF
		}
		i++
		return []byte(answers[i-1]), nil
	}
	t.Cleanup(func() { getPassword = old })
}

type fakeTicker struct {
	ch chan time.Time
}

func newFakeTicker() *fakeTicker { return &fakeTicker{ch: make(chan time.Time)} }

func (f *fakeTicker) Chan() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()                  {}

func (f *fakeTicker) factory() flows.TickerFactory {
	return func(time.Duration) flows.Ticker { return f }
}

func (f *fakeTicker) fire() bool {
	select {
	case f.ch <- time.Now():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

type fakeAuth struct {
	mu      sync.Mutex
	snap    session.Snapshot
	pending *services.PendingVerification

	loginMsg  string
	loginErr  error
	logoutErr error
	calls     []string
	lastEmail string
	lastPass  string
}

func (f *fakeAuth) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (string, error) {
	f.record("login")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEmail, f.lastPass = email, password
	if f.loginErr != nil {
		return "", f.loginErr
	}
	f.snap = session.Snapshot{LoggedIn: true, Token: "tok", UserID: "u1", EmailVerified: true}
	return f.loginMsg, nil
}

func (f *fakeAuth) Register(_ context.Context, email, password, _ string) (string, error) {
	f.record("register")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEmail, f.lastPass = email, password
	f.snap = session.Snapshot{LoggedIn: true, Token: "tok-new", UserID: "u-new"}
	return services.MsgVerificationSent, nil
}

func (f *fakeAuth) ResendVerification(context.Context) (string, error) {
	f.record("resend")
	return "", services.ErrNoPendingToken
}

func (f *fakeAuth) ForgotPassword(_ context.Context, email string) (string, error) {
	f.record("forgot")
	f.mu.Lock()
	f.lastEmail = email
	f.mu.Unlock()
	return services.MsgPasswordResetSent, nil
}

func (f *fakeAuth) Logout(context.Context) (string, error) {
	f.record("logout")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = session.Snapshot{}
	if f.logoutErr != nil {
		return "", f.logoutErr
	}
	return services.MsgLoggedOut, nil
}

func (f *fakeAuth) Pending() (services.PendingVerification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		return services.PendingVerification{}, false
	}
	return *f.pending, true
}

func (f *fakeAuth) Session() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

// fakeExpenses is an in-memory ExpenseService.
type fakeExpenses struct {
	list     []models.Expense
	fetchErr error
	addErr   error
	nextID   int
}

func (f *fakeExpenses) Fetch(context.Context) ([]models.Expense, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]models.Expense(nil), f.list...), nil
}

func (f *fakeExpenses) Add(_ context.Context, e models.Expense) (models.Expense, error) {
	if f.addErr != nil {
		return models.Expense{}, f.addErr
	}
	f.nextID++
	e.ID = fmt.Sprintf("id%d", f.nextID)
	f.list = append([]models.Expense{e}, f.list...)
	return e, nil
}

func (f *fakeExpenses) Update(_ context.Context, e models.Expense) error {
	for i := range f.list {
		if f.list[i].ID == e.ID {
			f.list[i] = e
		}
	}
	return nil
}

func (f *fakeExpenses) Delete(_ context.Context, id string) error {
	kept := f.list[:0]
	for _, e := range f.list {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.list = kept
	return nil
}

func (f *fakeExpenses) Get(id string) (models.Expense, bool) {
	for _, e := range f.list {
		if e.ID == id {
			return e, true
		}
	}
	return models.Expense{}, false
}

func (f *fakeExpenses) Expenses() []models.Expense { return f.list }

func (f *fakeExpenses) Search(term string) []models.Expense {
	var out []models.Expense
	for _, e := range f.list {
		if e.MatchesTitle(term) {
			out = append(out, e)
		}
	}
	return out
}

type fakeIdentity struct {
	mu           sync.Mutex
	result       identity.Result
	confirmCalls int
	resetCalls   int
	lastPassword string
}

func (f *fakeIdentity) ConfirmEmailVerification(context.Context, string) identity.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmCalls++
	return f.result
}

func (f *fakeIdentity) ConfirmPasswordReset(_ context.Context, _, pw string) identity.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetCalls++
	f.lastPassword = pw
	return f.result
}

type testApp struct {
	*App
	fakeAuth     *fakeAuth
	fakeExpenses *fakeExpenses
	fakeIdentity *fakeIdentity
	ticker       *fakeTicker
	output       func() string
}

// newTestApp builds an App over fakes; input is what the user types.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	ta := &testApp{
		fakeAuth:     &fakeAuth{loginMsg: services.MsgWelcomeBack},
		fakeExpenses: &fakeExpenses{},
		fakeIdentity: &fakeIdentity{result: identity.Result{OK: true}},
		ticker:       newFakeTicker(),
		output:       captureOutput(t),
	}
	ta.App = newApp(ta.fakeAuth, ta.fakeExpenses, ta.fakeIdentity, bufio.NewReader(strings.NewReader(input)), io.Discard, nil)
	ta.App.newTicker = ta.ticker.factory()
	t.Cleanup(func() { _ = ta.App.Close() })
	return ta
}

func verifiedSession() session.Snapshot {
	return session.Snapshot{LoggedIn: true, Token: "tok", UserID: "u1", EmailVerified: true}
}
