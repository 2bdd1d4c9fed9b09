package shoppinglists

import (
	"context"

	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
)

// Repository stores shopping lists. Every lookup is scoped to the owner so
// a list owned by someone else reads as absent.
type Repository interface {
	Create(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error)
	FindByID(ctx context.Context, userID, id int64) (*models.ShoppingList, error)
	FindByName(ctx context.Context, userID int64, name string) (*models.ShoppingList, error)
	List(ctx context.Context, userID int64, q models.PageQuery) (*models.Page[models.ShoppingList], error)
	Update(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error)
	Delete(ctx context.Context, userID, id int64) error
}
