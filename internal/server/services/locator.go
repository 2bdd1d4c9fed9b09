package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/repomanager"
)

const (
	MsgListIDNotInteger = "shopping list IDs must be integers"
	MsgListNotFound     = "shopping list with that ID cannot be found!"
	MsgItemIDNotInteger = "item IDs must be integers"
	MsgItemNotFound     = "item with that ID cannot be found!"
)

// Locator resolves identifiers taken from a URL path into resources the
// user owns.
//
// A list that exists but belongs to another user is reported exactly like
// a list that does not exist, so ids cannot be probed. Items are only
// looked up once their parent list has been resolved for the user.
type Locator struct {
	repomanager repomanager.RepositoryManager
	db          dbx.DBTX
}

func NewLocator(m repomanager.RepositoryManager, db dbx.DBTX) *Locator {
	return &Locator{repomanager: m, db: db}
}

// With returns a Locator that reads through db, typically a transaction.
func (l *Locator) With(db dbx.DBTX) *Locator {
	return &Locator{repomanager: l.repomanager, db: db}
}

func (l *Locator) FindList(ctx context.Context, userID int64, rawListID string) (*models.ShoppingList, error) {
	listID, err := strconv.ParseInt(rawListID, 10, 64)
	if err != nil {
		return nil, nonInteger(MsgListIDNotInteger)
	}

	list, err := l.repomanager.ShoppingLists(l.db).FindByID(ctx, userID, listID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, notFound(MsgListNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error searching shopping list: %w", err)
	}
	return list, nil
}

func (l *Locator) FindItem(ctx context.Context, userID int64, rawListID, rawItemID string) (*models.ShoppingList, *models.Item, error) {
	list, err := l.FindList(ctx, userID, rawListID)
	if err != nil {
		return nil, nil, err
	}

	itemID, err := strconv.ParseInt(rawItemID, 10, 64)
	if err != nil {
		return nil, nil, nonInteger(MsgItemIDNotInteger)
	}

	item, err := l.repomanager.Items(l.db).FindByID(ctx, list.ID, itemID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil, notFound(MsgItemNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error searching item: %w", err)
	}
	return list, item, nil
}
