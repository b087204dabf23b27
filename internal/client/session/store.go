// Package session holds the authenticated session: who is logged in, with
// which identity token, and whether their email is verified.
//
// The Store is the only writer. Login, Register and Logout persist first and
// then update memory, so memory never claims a session that storage does
// not have.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/trackit/internal/client/identity"
	"github.com/dmitrijs2005/trackit/internal/logging"
)

var ErrIncompleteCredentials = errors.New("token and user id are required")

type State int

const (
	Anonymous State = iota
	AuthenticatedUnverified
	AuthenticatedVerified
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case AuthenticatedUnverified:
		return "authenticated-unverified"
	case AuthenticatedVerified:
		return "authenticated-verified"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is a read-only copy of the session. LoggedIn implies Token and
// UserID are both non-empty.
type Snapshot struct {
	LoggedIn      bool
	Token         string
	UserID        string
	EmailVerified bool
}

func (s Snapshot) State() State {
	switch {
	case !s.LoggedIn:
		return Anonymous
	case s.EmailVerified:
		return AuthenticatedVerified
	default:
		return AuthenticatedUnverified
	}
}

type Credentials struct {
	Token         string
	UserID        string
	EmailVerified bool
}

type Store struct {
	mu        sync.RWMutex
	snap      Snapshot
	persister Persister
	logger    logging.Logger
	now       func() time.Time
}

// Open restores the session from p. A partially persisted session (token
// without user id or the reverse) starts as Anonymous.
func Open(ctx context.Context, p Persister, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Store{persister: p, logger: logger, now: time.Now}

	saved, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	switch {
	case saved.Token != "" && saved.UserID != "":
		s.snap = Snapshot{
			LoggedIn:      true,
			Token:         saved.Token,
			UserID:        saved.UserID,
			EmailVerified: saved.EmailVerified,
		}
		s.warnIfExpired(ctx, saved.Token)
	case saved.Token != "" || saved.UserID != "":
		logger.Warn(ctx, "ignoring incomplete persisted session")
	}

	return s, nil
}

func (s *Store) warnIfExpired(ctx context.Context, token string) {
	claims, err := identity.ParseClaims(token)
	if err != nil {
		s.logger.Warn(ctx, "persisted token is not a readable JWT", "error", err)
		return
	}
	if claims.Expired(s.now()) {
		s.logger.Warn(ctx, "persisted token has expired; data calls will be rejected until next login",
			"user_id", claims.UserID, "expired_at", claims.ExpiresAt.Time)
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Store) Login(ctx context.Context, c Credentials) error {
	if err := s.establish(ctx, c); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	s.logger.Info(ctx, "session established", "user_id", c.UserID, "email_verified", c.EmailVerified)
	return nil
}

func (s *Store) Register(ctx context.Context, c Credentials) error {
	if err := s.establish(ctx, c); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.logger.Info(ctx, "session registered", "user_id", c.UserID, "email_verified", c.EmailVerified)
	return nil
}

func (s *Store) establish(ctx context.Context, c Credentials) error {
	if c.Token == "" || c.UserID == "" {
		return ErrIncompleteCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Save(ctx, Persisted(c)); err != nil {
		return err
	}
	s.snap = Snapshot{
		LoggedIn:      true,
		Token:         c.Token,
		UserID:        c.UserID,
		EmailVerified: c.EmailVerified,
	}
	return nil
}

// Logout always drops the in-memory session. A persistence failure is still
// reported so the caller can tell the user the device may keep the token.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.persister.Clear(ctx)
	s.snap = Snapshot{}
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info(ctx, "session cleared")
	return nil
}
