package memory

import (
	"context"

	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/revokedtokens"
)

type RevokedTokenRepository struct {
	s *Store
}

func NewRevokedTokenRepository(s *Store) *RevokedTokenRepository {
	return &RevokedTokenRepository{s: s}
}

var _ revokedtokens.Repository = (*RevokedTokenRepository)(nil)

func (r *RevokedTokenRepository) Revoke(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.d.revoked[token]; ok {
		return nil
	}
	r.s.d.revoked[token] = models.RevokedToken{ID: r.s.nextID(), Token: token, RevokedAt: now()}
	return nil
}

func (r *RevokedTokenRepository) IsRevoked(_ context.Context, token string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.d.revoked[token]
	return ok, nil
}
