package revokedtokens

import "context"

// Repository is the revocation store. Entries are never removed.
type Repository interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
