package items

import (
	"context"

	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
)

// Repository stores items. Every lookup is scoped to the parent list; the
// list's own ownership is checked by the caller before an item is touched.
type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	FindByID(ctx context.Context, listID, id int64) (*models.Item, error)
	FindByName(ctx context.Context, listID int64, name string) (*models.Item, error)
	List(ctx context.Context, listID int64, q models.PageQuery) (*models.Page[models.Item], error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, listID, id int64) error
}
