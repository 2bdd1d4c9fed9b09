package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/items"
)

type ItemRepository struct {
	s *Store
}

func NewItemRepository(s *Store) *ItemRepository { return &ItemRepository{s: s} }

var _ items.Repository = (*ItemRepository)(nil)

func (r *ItemRepository) nameTaken(listID, exceptID int64, name string) bool {
	for _, it := range r.s.d.items {
		if it.ShoppingListID == listID && it.Name == name && it.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *ItemRepository) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.d.lists[item.ShoppingListID]; !ok {
		return nil, common.ErrorNotFound
	}
	if r.nameTaken(item.ShoppingListID, 0, item.Name) {
		return nil, common.ErrorAlreadyExists
	}

	item.ID = r.s.nextID()
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	r.s.d.items[item.ID] = *item
	return item, nil
}

func (r *ItemRepository) FindByID(_ context.Context, listID, id int64) (*models.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	it, ok := r.s.d.items[id]
	if !ok || it.ShoppingListID != listID {
		return nil, common.ErrorNotFound
	}
	return &it, nil
}

func (r *ItemRepository) FindByName(_ context.Context, listID int64, name string) (*models.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, it := range r.s.d.items {
		if it.ShoppingListID == listID && it.Name == name {
			return &it, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *ItemRepository) List(_ context.Context, listID int64, q models.PageQuery) (*models.Page[models.Item], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Item
	for _, it := range r.s.d.items {
		if it.ShoppingListID == listID && strings.Contains(it.Name, q.Search) {
			matched = append(matched, &it)
		}
	}
	slices.SortFunc(matched, func(a, b *models.Item) int { return cmp.Compare(a.ID, b.ID) })

	return &models.Page[models.Item]{Rows: window(matched, q), Total: len(matched)}, nil
}

func (r *ItemRepository) Update(_ context.Context, item *models.Item) (*models.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.d.items[item.ID]
	if !ok || stored.ShoppingListID != item.ShoppingListID {
		return nil, common.ErrorNotFound
	}
	if r.nameTaken(item.ShoppingListID, item.ID, item.Name) {
		return nil, common.ErrorAlreadyExists
	}

	stored.Name = item.Name
	stored.Price = item.Price
	stored.Quantity = item.Quantity
	stored.Purchased = item.Purchased
	stored.UpdatedAt = now()
	r.s.d.items[item.ID] = stored

	item.UpdatedAt = stored.UpdatedAt
	return item, nil
}

func (r *ItemRepository) Delete(_ context.Context, listID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	it, ok := r.s.d.items[id]
	if !ok || it.ShoppingListID != listID {
		return common.ErrorNotFound
	}
	delete(r.s.d.items, id)
	return nil
}
