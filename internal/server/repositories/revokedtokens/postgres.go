// Package revokedtokens provides the PostgreSQL-backed revocation store
// for bearer tokens.
package revokedtokens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
)

// PostgresRepository implements the revocation store over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Revoke records token. Revoking an already revoked token is a no-op.
func (r *PostgresRepository) Revoke(ctx context.Context, token string) error {
	query :=
		`INSERT INTO revoked_tokens (token)
		 VALUES ($1)
		 ON CONFLICT (token) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1)
		 `

	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&revoked); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return revoked, nil
}
