package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shoppinglist/internal/server/validation"
)

const (
	MsgItemFieldsRequired = "'name', 'price' and 'quantity' of an item must be specified whereas 'status' is optional"
	MsgItemNameTaken      = "an item with name '%s' already exists"
	MsgItemUnchanged      = "no changes were made to the item"
)

// ItemInput carries the editable item fields as the client sent them.
// Status is nil when the client did not send it.
type ItemInput struct {
	Name     string
	Price    string
	Quantity string
	Status   *string
}

// normalize checks the required fields and returns them trimmed, with the
// name normalized.
func (in ItemInput) normalize() (name, price, quantity string, err error) {
	name = validation.NormalizeName(in.Name)
	price = strings.TrimSpace(in.Price)
	quantity = strings.TrimSpace(in.Quantity)
	if name == "" || price == "" || quantity == "" {
		return "", "", "", missingInput(MsgItemFieldsRequired)
	}
	return name, price, quantity, nil
}

// purchased reads Status: only a case-insensitive "true" marks the item as
// bought. Without a status the fallback is kept.
func (in ItemInput) purchased(fallback bool) bool {
	if in.Status == nil {
		return fallback
	}
	return strings.EqualFold(strings.TrimSpace(*in.Status), "true")
}

// ItemService manages items on the authenticated user's lists.
type ItemService struct {
	db          dbx.DBTX
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	locator     *Locator
}

func NewItemService(db dbx.DBTX, tx dbx.Transactor, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, tx: tx, repomanager: m, locator: NewLocator(m, db)}
}

// Create adds an item to the list. The normalized name must be unused on
// that list.
func (s *ItemService) Create(ctx context.Context, userID int64, rawListID string, in ItemInput) (*models.Item, error) {
	var item *models.Item
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		list, err := s.locator.With(tx).FindList(ctx, userID, rawListID)
		if err != nil {
			return err
		}

		name, price, quantity, err := in.normalize()
		if err != nil {
			return err
		}

		repo := s.repomanager.Items(tx)
		existing, err := repo.FindByName(ctx, list.ID, name)
		if err := nameFree(itemID(existing), err, 0, MsgItemNameTaken, name); err != nil {
			return err
		}

		item, err = repo.Create(ctx, &models.Item{
			ShoppingListID: list.ID,
			Name:           name,
			Price:          price,
			Quantity:       quantity,
			Purchased:      in.purchased(false),
		})
		if errors.Is(err, common.ErrorAlreadyExists) {
			return conflictf(MsgItemNameTaken, name)
		}
		if err != nil {
			return fmt.Errorf("error creating item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List returns one page of the list's items. q.Search is matched as a
// case-insensitive substring of the name.
func (s *ItemService) List(ctx context.Context, userID int64, rawListID string, q models.PageQuery) (*models.Page[models.Item], error) {
	list, err := s.locator.FindList(ctx, userID, rawListID)
	if err != nil {
		return nil, err
	}

	q.Search = validation.NormalizeName(q.Search)
	page, err := s.repomanager.Items(s.db).List(ctx, list.ID, q)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	return page, nil
}

func (s *ItemService) Get(ctx context.Context, userID int64, rawListID, rawItemID string) (*models.Item, error) {
	_, item, err := s.locator.FindItem(ctx, userID, rawListID, rawItemID)
	return item, err
}

// Update replaces the item's fields. An absent status keeps the stored
// purchase flag; resubmitting the stored values is a no-op.
func (s *ItemService) Update(ctx context.Context, userID int64, rawListID, rawItemID string, in ItemInput) (*models.Item, error) {
	var item *models.Item
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		_, item, err = s.locator.With(tx).FindItem(ctx, userID, rawListID, rawItemID)
		if err != nil {
			return err
		}

		name, price, quantity, err := in.normalize()
		if err != nil {
			return err
		}
		purchased := in.purchased(item.Purchased)

		if name == item.Name && price == item.Price && quantity == item.Quantity && purchased == item.Purchased {
			return noChanges(MsgItemUnchanged)
		}

		repo := s.repomanager.Items(tx)
		existing, err := repo.FindByName(ctx, item.ShoppingListID, name)
		if err := nameFree(itemID(existing), err, item.ID, MsgItemNameTaken, name); err != nil {
			return err
		}

		item.Name = name
		item.Price = price
		item.Quantity = quantity
		item.Purchased = purchased
		item, err = repo.Update(ctx, item)
		if errors.Is(err, common.ErrorAlreadyExists) {
			return conflictf(MsgItemNameTaken, name)
		}
		if err != nil {
			return fmt.Errorf("error updating item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the item and returns its id.
func (s *ItemService) Delete(ctx context.Context, userID int64, rawListID, rawItemID string) (int64, error) {
	var id int64
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, item, err := s.locator.With(tx).FindItem(ctx, userID, rawListID, rawItemID)
		if err != nil {
			return err
		}
		if err := s.repomanager.Items(tx).Delete(ctx, item.ShoppingListID, item.ID); err != nil {
			return fmt.Errorf("error deleting item: %w", err)
		}
		id = item.ID
		return nil
	})
	return id, err
}

func itemID(i *models.Item) int64 {
	if i == nil {
		return 0
	}
	return i.ID
}
