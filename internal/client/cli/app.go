package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/trackit/internal/client/config"
	"github.com/dmitrijs2005/trackit/internal/client/datastore"
	"github.com/dmitrijs2005/trackit/internal/client/flows"
	"github.com/dmitrijs2005/trackit/internal/client/identity"
	"github.com/dmitrijs2005/trackit/internal/client/router"
	"github.com/dmitrijs2005/trackit/internal/client/services"
	"github.com/dmitrijs2005/trackit/internal/client/session"
	"github.com/dmitrijs2005/trackit/internal/client/storage"
	"github.com/dmitrijs2005/trackit/internal/logging"
)

// actionIdentity is what the emailed-link screens need from the identity
// provider.
type actionIdentity interface {
	flows.Confirmer
	flows.Resetter
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	auth      services.AuthService
	expenses  services.ExpenseService
	identity  actionIdentity
	reader    *bufio.Reader
	out       io.Writer
	newTicker flows.TickerFactory
	db        *sql.DB

	// mu guards the navigation state below. Commands hold it while they run;
	// the verification redirect takes it from its own goroutine.
	mu       sync.Mutex
	location router.Location
	decision router.Decision
	verify   *flows.VerifyFlow
	reset    *flows.ResetFlow
}

// NewApp wires the client from c: logger, session persistence, identity and
// data store clients, and services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	persister, db, err := openPersister(ctx, c)
	if err != nil {
		logger.Error(ctx, "session storage unavailable", "backend", c.SessionBackend, "error", err)
		return nil, err
	}

	store, err := session.Open(ctx, persister, logger)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	idc := identity.NewClient(c.IdentityEndpoint, c.APIKey,
		identity.WithTimeout(c.RequestTimeout),
		identity.WithLogger(logger.With("component", "identity")))
	ds := datastore.NewClient(c.DataStoreEndpoint,
		datastore.WithTimeout(c.RequestTimeout),
		datastore.WithLogger(logger.With("component", "datastore")))

	app := newApp(
		services.NewAuthService(idc, store, logger.With("component", "auth")),
		services.NewExpenseService(ds, store, logger.With("component", "expenses")),
		idc,
		bufio.NewReader(os.Stdin),
		os.Stdout,
		logger,
	)
	app.config = c
	app.db = db
	return app, nil
}

func openPersister(ctx context.Context, c *config.Config) (session.Persister, *sql.DB, error) {
	switch c.SessionBackend {
	case config.BackendKeyring:
		return session.NewKeyringPersister(session.DefaultKeyringService), nil, nil
	case config.BackendSQLite, "":
		db, err := storage.Open(ctx, c.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return session.NewMetadataPersister(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
}

func newApp(auth services.AuthService, expenses services.ExpenseService, idc actionIdentity, r *bufio.Reader, w io.Writer, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{
		logger:    logger,
		auth:      auth,
		expenses:  expenses,
		identity:  idc,
		reader:    r,
		out:       w,
		newTicker: flows.NewStdTicker,
	}
}

// Run shows the start location and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	a.Root(ctx)
	return nil
}

// Close stops any running flow and closes the local database.
func (a *App) Close() error {
	a.mu.Lock()
	a.leaveScreen()
	a.mu.Unlock()

	if a.db != nil {
		err := a.db.Close()
		a.db = nil
		return err
	}
	return nil
}
