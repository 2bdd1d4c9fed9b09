// Package shoppinglists provides the PostgreSQL-backed shopping list
// repository.
package shoppinglists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
)

// PostgresRepository implements list storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listColumns = `id, user_id, name, notify_date, created_at, updated_at`

func scanList(row interface{ Scan(...any) error }) (*models.ShoppingList, error) {
	l := &models.ShoppingList{}
	if err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.NotifyDate, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return l, nil
}

// Create inserts list and fills in its id and timestamps. A name already
// used by the same owner yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	query :=
		`INSERT INTO shoppinglists (user_id, name, notify_date)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, list.UserID, list.Name, list.NotifyDate).
		Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, userID, id int64) (*models.ShoppingList, error) {
	query := `SELECT ` + listColumns + ` FROM shoppinglists
		 WHERE user_id = $1 AND id = $2
		 `
	return r.findOne(ctx, query, userID, id)
}

func (r *PostgresRepository) FindByName(ctx context.Context, userID int64, name string) (*models.ShoppingList, error) {
	query := `SELECT ` + listColumns + ` FROM shoppinglists
		 WHERE user_id = $1 AND name = $2
		 `
	return r.findOne(ctx, query, userID, name)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, args ...any) (*models.ShoppingList, error) {
	l, err := scanList(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

// List returns one page of the owner's lists whose name contains
// q.Search, ordered by id, together with the total number of matches.
func (r *PostgresRepository) List(ctx context.Context, userID int64, q models.PageQuery) (*models.Page[models.ShoppingList], error) {
	pattern := dbx.ContainsPattern(q.Search)

	countQuery :=
		`SELECT count(*) FROM shoppinglists
		 WHERE user_id = $1 AND name LIKE $2
		 `
	page := &models.Page[models.ShoppingList]{}
	if err := r.db.QueryRowContext(ctx, countQuery, userID, pattern).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + listColumns + ` FROM shoppinglists
		 WHERE user_id = $1 AND name LIKE $2
		 ORDER BY id
		 LIMIT $3 OFFSET $4
		 `
	rows, err := r.db.QueryContext(ctx, query, userID, pattern, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select shopping lists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		page.Rows = append(page.Rows, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return page, nil
}

// Update stores list's name and notify date and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	query :=
		`UPDATE shoppinglists SET name = $1, notify_date = $2, updated_at = now()
		 WHERE user_id = $3 AND id = $4
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, list.Name, list.NotifyDate, list.UserID, list.ID).Scan(&list.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrorNotFound
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

// Delete removes the list; its items go with it through the foreign key.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	query :=
		`DELETE FROM shoppinglists
		 WHERE user_id = $1 AND id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
