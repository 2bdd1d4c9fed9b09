package memory

import (
	"context"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/users"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository { return &UserRepository{s: s} }

var _ users.Repository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.d.users {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	user.ID = r.s.nextID()
	user.CreatedAt = now()
	r.s.d.users[user.ID] = *user
	return user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.d.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.d.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = passwordHash
	r.s.d.users[id] = u
	return nil
}
