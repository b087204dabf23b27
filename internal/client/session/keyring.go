package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const DefaultKeyringService = "trackit"

// KeyringPersister keeps the session in the OS keychain, one secret per key.
// The keychain has no transactions, so a failed Save may leave some keys
// written; the next Save or Clear overwrites them.
type KeyringPersister struct {
	service string
}

func NewKeyringPersister(service string) *KeyringPersister {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringPersister{service: service}
}

func (p *KeyringPersister) get(key string) (string, error) {
	v, err := keyring.Get(p.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("keyring get %s: %w", key, err)
	}
	return v, nil
}

func (p *KeyringPersister) Load(_ context.Context) (Persisted, error) {
	var out Persisted
	var err error
	if out.Token, err = p.get(KeyToken); err != nil {
		return Persisted{}, err
	}
	if out.UserID, err = p.get(KeyUserID); err != nil {
		return Persisted{}, err
	}
	verified, err := p.get(KeyEmailVerified)
	if err != nil {
		return Persisted{}, err
	}
	out.EmailVerified = verified == "true"
	return out, nil
}

func (p *KeyringPersister) Save(_ context.Context, s Persisted) error {
	values := [][2]string{
		{KeyToken, s.Token},
		{KeyUserID, s.UserID},
		{KeyEmailVerified, formatBool(s.EmailVerified)},
	}
	for _, kv := range values {
		if err := keyring.Set(p.service, kv[0], kv[1]); err != nil {
			return fmt.Errorf("keyring set %s: %w", kv[0], err)
		}
	}
	return nil
}

func (p *KeyringPersister) Clear(_ context.Context) error {
	var errs []error
	for _, key := range []string{KeyToken, KeyUserID, KeyEmailVerified} {
		if err := keyring.Delete(p.service, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			errs = append(errs, fmt.Errorf("keyring delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
