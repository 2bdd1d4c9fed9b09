// Package items provides the PostgreSQL-backed repository for shopping
// list items.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const itemColumns = `id, shoppinglist_id, name, price, quantity, purchased, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*models.Item, error) {
	i := &models.Item{}
	if err := row.Scan(&i.ID, &i.ShoppingListID, &i.Name, &i.Price, &i.Quantity, &i.Purchased, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return i, nil
}

// Create inserts item and fills in its id and timestamps. A name already
// used in the same list yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query :=
		`INSERT INTO items (shoppinglist_id, name, price, quantity, purchased)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, item.ShoppingListID, item.Name, item.Price, item.Quantity, item.Purchased).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, listID, id int64) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		 WHERE shoppinglist_id = $1 AND id = $2
		 `
	return r.findOne(ctx, query, listID, id)
}

func (r *PostgresRepository) FindByName(ctx context.Context, listID int64, name string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		 WHERE shoppinglist_id = $1 AND name = $2
		 `
	return r.findOne(ctx, query, listID, name)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, args ...any) (*models.Item, error) {
	i, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return i, nil
}

// List returns one page of the list's items whose name contains q.Search,
// ordered by id, together with the total number of matches.
func (r *PostgresRepository) List(ctx context.Context, listID int64, q models.PageQuery) (*models.Page[models.Item], error) {
	pattern := dbx.ContainsPattern(q.Search)

	countQuery :=
		`SELECT count(*) FROM items
		 WHERE shoppinglist_id = $1 AND name LIKE $2
		 `
	page := &models.Page[models.Item]{}
	if err := r.db.QueryRowContext(ctx, countQuery, listID, pattern).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM items
		 WHERE shoppinglist_id = $1 AND name LIKE $2
		 ORDER BY id
		 LIMIT $3 OFFSET $4
		 `
	rows, err := r.db.QueryContext(ctx, query, listID, pattern, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		page.Rows = append(page.Rows, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return page, nil
}

// Update stores the item's editable fields and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	query :=
		`UPDATE items SET name = $1, price = $2, quantity = $3, purchased = $4, updated_at = now()
		 WHERE shoppinglist_id = $5 AND id = $6
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.Price, item.Quantity, item.Purchased, item.ShoppingListID, item.ID).Scan(&item.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrorNotFound
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, listID, id int64) error {
	query :=
		`DELETE FROM items
		 WHERE shoppinglist_id = $1 AND id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, listID, id)
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
