package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shoppinglist/internal/server/validation"
)

const (
	MsgListFieldsRequired = "'name' and 'notify date' of the shoppinglist are required fields"
	MsgListNameTaken      = "a shopping list with name '%s' already exists"
	MsgListUnchanged      = "No changes were made to the list"
)

// ShoppingListService manages the authenticated user's shopping lists.
type ShoppingListService struct {
	db          dbx.DBTX
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	locator     *Locator
	now         func() time.Time
}

func NewShoppingListService(db dbx.DBTX, tx dbx.Transactor, m repomanager.RepositoryManager) *ShoppingListService {
	return &ShoppingListService{
		db:          db,
		tx:          tx,
		repomanager: m,
		locator:     NewLocator(m, db),
		now:         time.Now,
	}
}

// listInput validates the fields shared by Create and Update.
func (s *ShoppingListService) listInput(name, notifyDate string) (string, time.Time, error) {
	name = validation.NormalizeName(name)
	if name == "" || strings.TrimSpace(notifyDate) == "" {
		return "", time.Time{}, missingInput(MsgListFieldsRequired)
	}
	date, err := validation.ParseNotifyDate(notifyDate, s.now())
	if err != nil {
		return "", time.Time{}, malformedInput(err.Error())
	}
	return name, date, nil
}

// Create adds a list for userID. The normalized name must be unused among
// the user's lists.
func (s *ShoppingListService) Create(ctx context.Context, userID int64, name, notifyDate string) (*models.ShoppingList, error) {
	name, date, err := s.listInput(name, notifyDate)
	if err != nil {
		return nil, err
	}

	var list *models.ShoppingList
	err = s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.ShoppingLists(tx)
		existing, err := repo.FindByName(ctx, userID, name)
		if err := nameFree(listID(existing), err, 0, MsgListNameTaken, name); err != nil {
			return err
		}

		list, err = repo.Create(ctx, &models.ShoppingList{UserID: userID, Name: name, NotifyDate: date})
		if errors.Is(err, common.ErrorAlreadyExists) {
			return conflictf(MsgListNameTaken, name)
		}
		if err != nil {
			return fmt.Errorf("error creating shopping list: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// List returns one page of the user's lists. q.Search is matched as a
// case-insensitive substring of the name.
func (s *ShoppingListService) List(ctx context.Context, userID int64, q models.PageQuery) (*models.Page[models.ShoppingList], error) {
	q.Search = validation.NormalizeName(q.Search)
	page, err := s.repomanager.ShoppingLists(s.db).List(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("error listing shopping lists: %w", err)
	}
	return page, nil
}

func (s *ShoppingListService) Get(ctx context.Context, userID int64, rawListID string) (*models.ShoppingList, error) {
	return s.locator.FindList(ctx, userID, rawListID)
}

// Update renames the list and moves its notify date. Submitting the stored
// values again is reported as a no-op rather than a success.
func (s *ShoppingListService) Update(ctx context.Context, userID int64, rawListID, name, notifyDate string) (*models.ShoppingList, error) {
	var list *models.ShoppingList
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		list, err = s.locator.With(tx).FindList(ctx, userID, rawListID)
		if err != nil {
			return err
		}

		newName, date, err := s.listInput(name, notifyDate)
		if err != nil {
			return err
		}

		if newName == list.Name && validation.FormatDate(date) == validation.FormatDate(list.NotifyDate) {
			return noChanges(MsgListUnchanged)
		}

		repo := s.repomanager.ShoppingLists(tx)
		existing, err := repo.FindByName(ctx, userID, newName)
		if err := nameFree(listID(existing), err, list.ID, MsgListNameTaken, newName); err != nil {
			return err
		}

		list.Name = newName
		list.NotifyDate = date
		list, err = repo.Update(ctx, list)
		if errors.Is(err, common.ErrorAlreadyExists) {
			return conflictf(MsgListNameTaken, newName)
		}
		if err != nil {
			return fmt.Errorf("error updating shopping list: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes the list and every item on it. It returns the id deleted.
func (s *ShoppingListService) Delete(ctx context.Context, userID int64, rawListID string) (int64, error) {
	var id int64
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		list, err := s.locator.With(tx).FindList(ctx, userID, rawListID)
		if err != nil {
			return err
		}
		if err := s.repomanager.ShoppingLists(tx).Delete(ctx, userID, list.ID); err != nil {
			return fmt.Errorf("error deleting shopping list: %w", err)
		}
		id = list.ID
		return nil
	})
	return id, err
}

// nameFree fails with a conflict when lookupErr is nil and the row found
// is not selfID. A not-found lookup means the name is free.
func nameFree(foundID int64, lookupErr error, selfID int64, msg, name string) error {
	switch {
	case errors.Is(lookupErr, common.ErrorNotFound):
		return nil
	case lookupErr != nil:
		return fmt.Errorf("error checking name: %w", lookupErr)
	case foundID == selfID:
		return nil
	}
	return conflictf(msg, name)
}

func listID(l *models.ShoppingList) int64 {
	if l == nil {
		return 0
	}
	return l.ID
}
