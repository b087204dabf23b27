package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/trackit/internal/client/datastore"
	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/dmitrijs2005/trackit/internal/client/session"
	"github.com/dmitrijs2005/trackit/internal/logging"
)

// ExpenseStore is implemented by *datastore.Client.
type ExpenseStore interface {
	List(ctx context.Context, a datastore.Auth) ([]models.Expense, error)
	Add(ctx context.Context, a datastore.Auth, e models.Expense) (models.Expense, error)
	Update(ctx context.Context, a datastore.Auth, e models.Expense) error
	Delete(ctx context.Context, a datastore.Auth, id string) error
}

type SessionView interface {
	Snapshot() session.Snapshot
}

// ExpenseService keeps the signed-in user's expenses in memory and mirrors
// every change to the data store. The cached list belongs to one user id; a
// different session sees an empty list until it fetches.
type ExpenseService interface {
	Fetch(ctx context.Context) ([]models.Expense, error)
	Add(ctx context.Context, e models.Expense) (models.Expense, error)
	Update(ctx context.Context, e models.Expense) error
	Delete(ctx context.Context, id string) error
	Get(id string) (models.Expense, bool)
	Expenses() []models.Expense
	Search(term string) []models.Expense
}

type expenseService struct {
	store    ExpenseStore
	session  SessionView
	logger   logging.Logger
	validate *validator.Validate

	mu    sync.RWMutex
	owner string
	list  []models.Expense
}

func NewExpenseService(store ExpenseStore, sess SessionView, logger logging.Logger) ExpenseService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &expenseService{store: store, session: sess, logger: logger, validate: newValidator()}
}

// Total sums the values of list.
func Total(list []models.Expense) float64 {
	return models.TotalValue(list)
}

func (s *expenseService) auth() (datastore.Auth, error) {
	snap := s.session.Snapshot()
	if !snap.LoggedIn {
		return datastore.Auth{}, datastore.ErrNotAuthenticated
	}
	return datastore.Auth{UserID: snap.UserID, Token: snap.Token}, nil
}

// current returns the cache if it belongs to userID. Callers hold s.mu.
func (s *expenseService) current(userID string) []models.Expense {
	if s.owner != userID {
		return nil
	}
	return s.list
}

func (s *expenseService) Fetch(ctx context.Context) ([]models.Expense, error) {
	a, err := s.auth()
	if err != nil {
		return nil, err
	}

	list, err := s.store.List(ctx, a)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.owner = a.UserID
	s.list = list
	s.mu.Unlock()

	s.logger.Debug(ctx, "expenses fetched", "count", len(list))
	return cloneExpenses(list), nil
}

// Add validates e, stores it and puts it at the front of the list.
func (s *expenseService) Add(ctx context.Context, e models.Expense) (models.Expense, error) {
	if err := s.validate.Struct(e); err != nil {
		return models.Expense{}, validationError(err)
	}
	a, err := s.auth()
	if err != nil {
		return models.Expense{}, err
	}

	saved, err := s.store.Add(ctx, a, e)
	if err != nil {
		return models.Expense{}, err
	}

	s.mu.Lock()
	list := s.current(a.UserID)
	s.owner = a.UserID
	s.list = append([]models.Expense{saved}, list...)
	s.mu.Unlock()

	return saved, nil
}

func (s *expenseService) Update(ctx context.Context, e models.Expense) error {
	if e.ID == "" {
		return datastore.ErrMissingID
	}
	if err := s.validate.Struct(e); err != nil {
		return validationError(err)
	}
	a, err := s.auth()
	if err != nil {
		return err
	}

	if err := s.store.Update(ctx, a, e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.current(a.UserID) {
		if cur.ID == e.ID {
			s.list[i] = e
			break
		}
	}
	return nil
}

func (s *expenseService) Delete(ctx context.Context, id string) error {
	a, err := s.auth()
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, a, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.current(a.UserID)
	kept := make([]models.Expense, 0, len(list))
	for _, e := range list {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.list = kept
	s.owner = a.UserID
	return nil
}

func (s *expenseService) Get(id string) (models.Expense, bool) {
	userID := s.session.Snapshot().UserID

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.current(userID) {
		if e.ID == id {
			return e, true
		}
	}
	return models.Expense{}, false
}

func (s *expenseService) Expenses() []models.Expense {
	userID := s.session.Snapshot().UserID

	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneExpenses(s.current(userID))
}

// Search filters the cached list by a case-insensitive substring of the
// title. An empty term returns the whole list.
func (s *expenseService) Search(term string) []models.Expense {
	userID := s.session.Snapshot().UserID

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Expense, 0)
	for _, e := range s.current(userID) {
		if e.MatchesTitle(term) {
			out = append(out, e)
		}
	}
	return out
}

func cloneExpenses(list []models.Expense) []models.Expense {
	out := make([]models.Expense, len(list))
	copy(out, list)
	return out
}

// FormatValue renders an amount the way the list view shows it.
func FormatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
