package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/trackit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/trackit/internal/dbx"
)

// MetadataPersister keeps the session in the local SQLite metadata table.
// Save and Clear touch all three keys in one transaction.
type MetadataPersister struct {
	db *sql.DB
}

func NewMetadataPersister(db *sql.DB) *MetadataPersister {
	return &MetadataPersister{db: db}
}

func (p *MetadataPersister) Load(ctx context.Context) (Persisted, error) {
	repo := metadata.NewSQLiteRepository(p.db)

	var out Persisted
	var err error
	if out.Token, _, err = repo.Get(ctx, KeyToken); err != nil {
		return Persisted{}, err
	}
	if out.UserID, _, err = repo.Get(ctx, KeyUserID); err != nil {
		return Persisted{}, err
	}
	verified, _, err := repo.Get(ctx, KeyEmailVerified)
	if err != nil {
		return Persisted{}, err
	}
	out.EmailVerified = verified == "true"
	return out, nil
}

func (p *MetadataPersister) Save(ctx context.Context, s Persisted) error {
	err := dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, s.Token); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUserID, s.UserID); err != nil {
			return err
		}
		return repo.Set(ctx, KeyEmailVerified, formatBool(s.EmailVerified))
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (p *MetadataPersister) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, KeyToken, KeyUserID, KeyEmailVerified)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
