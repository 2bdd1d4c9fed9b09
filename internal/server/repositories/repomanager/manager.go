package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/items"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/shoppinglists"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// service code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	ShoppingLists(db dbx.DBTX) shoppinglists.Repository
	Items(db dbx.DBTX) items.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}
