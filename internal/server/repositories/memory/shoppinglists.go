package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/shoppinglists"
)

func now() time.Time { return time.Now().UTC() }

type ShoppingListRepository struct {
	s *Store
}

func NewShoppingListRepository(s *Store) *ShoppingListRepository {
	return &ShoppingListRepository{s: s}
}

var _ shoppinglists.Repository = (*ShoppingListRepository)(nil)

// nameTaken must be called with mu held.
func (r *ShoppingListRepository) nameTaken(userID, exceptID int64, name string) bool {
	for _, l := range r.s.d.lists {
		if l.UserID == userID && l.Name == name && l.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *ShoppingListRepository) Create(_ context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(list.UserID, 0, list.Name) {
		return nil, common.ErrorAlreadyExists
	}

	list.ID = r.s.nextID()
	list.CreatedAt = now()
	list.UpdatedAt = list.CreatedAt
	r.s.d.lists[list.ID] = *list
	return list, nil
}

func (r *ShoppingListRepository) FindByID(_ context.Context, userID, id int64) (*models.ShoppingList, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.d.lists[id]
	if !ok || l.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &l, nil
}

func (r *ShoppingListRepository) FindByName(_ context.Context, userID int64, name string) (*models.ShoppingList, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, l := range r.s.d.lists {
		if l.UserID == userID && l.Name == name {
			return &l, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *ShoppingListRepository) List(_ context.Context, userID int64, q models.PageQuery) (*models.Page[models.ShoppingList], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.ShoppingList
	for _, l := range r.s.d.lists {
		if l.UserID == userID && strings.Contains(l.Name, q.Search) {
			matched = append(matched, &l)
		}
	}
	slices.SortFunc(matched, func(a, b *models.ShoppingList) int { return cmp.Compare(a.ID, b.ID) })

	return &models.Page[models.ShoppingList]{Rows: window(matched, q), Total: len(matched)}, nil
}

func (r *ShoppingListRepository) Update(_ context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.d.lists[list.ID]
	if !ok || stored.UserID != list.UserID {
		return nil, common.ErrorNotFound
	}
	if r.nameTaken(list.UserID, list.ID, list.Name) {
		return nil, common.ErrorAlreadyExists
	}

	stored.Name = list.Name
	stored.NotifyDate = list.NotifyDate
	stored.UpdatedAt = now()
	r.s.d.lists[list.ID] = stored

	list.UpdatedAt = stored.UpdatedAt
	return list, nil
}

// Delete removes the list together with its items.
func (r *ShoppingListRepository) Delete(_ context.Context, userID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.d.lists[id]
	if !ok || l.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.d.lists, id)
	for itemID, it := range r.s.d.items {
		if it.ShoppingListID == id {
			delete(r.s.d.items, itemID)
		}
	}
	return nil
}

// window applies q's offset and limit to rows already in order.
func window[T any](rows []*T, q models.PageQuery) []*T {
	if q.Offset >= len(rows) {
		return nil
	}
	end := len(rows)
	if q.Limit > 0 && q.Offset+q.Limit < end {
		end = q.Offset + q.Limit
	}
	return rows[q.Offset:end]
}
