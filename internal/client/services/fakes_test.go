package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/trackit/internal/client/datastore"
	"github.com/dmitrijs2005/trackit/internal/client/identity"
	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/dmitrijs2005/trackit/internal/client/session"
)

// fakeIdentity returns canned results and counts calls per operation.
type fakeIdentity struct {
	LoginRes    identity.Result
	RegisterRes identity.Result
	SendRes     identity.Result
	UserRes     identity.Result
	ResetRes    identity.Result

	Calls     map[string]int
	LastToken string
	LastEmail string
}

func (f *fakeIdentity) count(op string) {
	if f.Calls == nil {
		f.Calls = map[string]int{}
	}
	f.Calls[op]++
}

func (f *fakeIdentity) Login(_ context.Context, email, _ string) identity.Result {
	f.count("login")
	f.LastEmail = email
	return f.LoginRes
}

func (f *fakeIdentity) Register(_ context.Context, email, _ string) identity.Result {
	f.count("register")
	f.LastEmail = email
	return f.RegisterRes
}

func (f *fakeIdentity) SendVerificationEmail(_ context.Context, token string) identity.Result {
	f.count("send")
	f.LastToken = token
	return f.SendRes
}

func (f *fakeIdentity) GetUserData(_ context.Context, token string) identity.Result {
	f.count("lookup")
	f.LastToken = token
	return f.UserRes
}

func (f *fakeIdentity) SendPasswordResetEmail(_ context.Context, email string) identity.Result {
	f.count("reset")
	f.LastEmail = email
	return f.ResetRes
}

// fakeStore is an in-memory session store with injectable failures.
type fakeStore struct {
	mu         sync.Mutex
	snap       session.Snapshot
	LoginErr   error
	LogoutErr  error
	Registered []session.Credentials
}

func (f *fakeStore) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeStore) set(c session.Credentials) {
	f.snap = session.Snapshot{LoggedIn: true, Token: c.Token, UserID: c.UserID, EmailVerified: c.EmailVerified}
}

func (f *fakeStore) Login(_ context.Context, c session.Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoginErr != nil {
		return f.LoginErr
	}
	f.set(c)
	return nil
}

func (f *fakeStore) Register(_ context.Context, c session.Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoginErr != nil {
		return f.LoginErr
	}
	f.Registered = append(f.Registered, c)
	f.set(c)
	return nil
}

func (f *fakeStore) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = session.Snapshot{}
	return f.LogoutErr
}

// fakeExpenses is an in-memory data store.
type fakeExpenses struct {
	Docs     map[string]models.Expense
	NextID   string
	Err      error
	LastAuth datastore.Auth
	Calls    int
}

func (f *fakeExpenses) List(_ context.Context, a datastore.Auth) ([]models.Expense, error) {
	f.Calls++
	f.LastAuth = a
	if f.Err != nil {
		return nil, f.Err
	}
	out := []models.Expense{}
	for id, e := range f.Docs {
		e.ID = id
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeExpenses) Add(_ context.Context, a datastore.Auth, e models.Expense) (models.Expense, error) {
	f.Calls++
	f.LastAuth = a
	if f.Err != nil {
		return models.Expense{}, f.Err
	}
	e.ID = f.NextID
	if f.Docs == nil {
		f.Docs = map[string]models.Expense{}
	}
	f.Docs[e.ID] = e
	return e, nil
}

func (f *fakeExpenses) Update(_ context.Context, a datastore.Auth, e models.Expense) error {
	f.Calls++
	f.LastAuth = a
	if f.Err != nil {
		return f.Err
	}
	f.Docs[e.ID] = e
	return nil
}

func (f *fakeExpenses) Delete(_ context.Context, a datastore.Auth, id string) error {
	f.Calls++
	f.LastAuth = a
	if f.Err != nil {
		return f.Err
	}
	delete(f.Docs, id)
	return nil
}
