package session

import "context"

// Keys under which a session is mirrored in durable storage.
const (
	KeyToken         = "token"
	KeyUserID        = "userId"
	KeyEmailVerified = "emailVerified"
)

// Persisted is the durable form of a session. Absent keys load as zero
// values.
type Persisted struct {
	Token         string
	UserID        string
	EmailVerified bool
}

// Persister mirrors the session to storage that survives restarts.
type Persister interface {
	Load(ctx context.Context) (Persisted, error)
	Save(ctx context.Context, p Persisted) error
	Clear(ctx context.Context) error
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
