package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/items"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/memory"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/shoppinglists"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/users"
)

// InMemoryRepositoryManager vends repositories over one memory.Store. The
// DBTX arguments are ignored; Store.WithTx provides the transactions.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func NewInMemoryRepositoryManager(store *memory.Store) *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: store}
}

// RunMigrations is a no-op: the store has no schema.
func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return memory.NewUserRepository(m.store)
}

func (m *InMemoryRepositoryManager) ShoppingLists(dbx.DBTX) shoppinglists.Repository {
	return memory.NewShoppingListRepository(m.store)
}

func (m *InMemoryRepositoryManager) Items(dbx.DBTX) items.Repository {
	return memory.NewItemRepository(m.store)
}

func (m *InMemoryRepositoryManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository {
	return memory.NewRevokedTokenRepository(m.store)
}
