package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/server/auth"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/items"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/memory"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/shoppinglists"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var errBoom = errors.New("boom")

// today is the fixed clock used by the list tests.
var today = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

type env struct {
	store *memory.Store
	repos repomanager.RepositoryManager
	users *UserService
	lists *ShoppingListService
	items *ItemService
	codec *auth.Codec
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	repos := repomanager.NewInMemoryRepositoryManager(store)
	codec := auth.NewCodec([]byte("test-secret"), time.Hour)

	lists := NewShoppingListService(memory.Conn{}, store, repos)
	lists.now = func() time.Time { return today }

	return &env{
		store: store,
		repos: repos,
		users: NewUserService(memory.Conn{}, store, repos, auth.NewBcryptHasher(bcrypt.MinCost), codec),
		lists: lists,
		items: NewItemService(memory.Conn{}, store, repos),
		codec: codec,
	}
}

func (e *env) register(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), email, "secret1")
	require.NoError(t, err)
	return u
}

func (e *env) createList(t *testing.T, userID int64, name string) *models.ShoppingList {
	t.Helper()
	l, err := e.lists.Create(context.Background(), userID, name, "2027-01-01")
	require.NoError(t, err)
	return l
}

// requireFailure asserts err is a *common.Failure with the given status
// and message.
func requireFailure(t *testing.T, err error, status int, msg string) *common.Failure {
	t.Helper()
	f, ok := common.AsFailure(err)
	require.True(t, ok, "expected *common.Failure, got %v", err)
	require.Equal(t, status, f.Status)
	require.Equal(t, msg, f.Message)
	return f
}

// --- fakes for infrastructure failures ---

type fakeUsersRepo struct {
	users.Repository
	getErr    error
	updateErr error
	user      *models.User
}

func (f *fakeUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeUsersRepo) GetByID(context.Context, int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeUsersRepo) UpdatePassword(context.Context, int64, string) error {
	return f.updateErr
}

type fakeRevokedRepo struct {
	revokeErr error
	revoked   []string
}

func (f *fakeRevokedRepo) Revoke(_ context.Context, token string) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	f.revoked = append(f.revoked, token)
	return nil
}

func (f *fakeRevokedRepo) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type fakeListsRepo struct {
	shoppinglists.Repository
	findErr error
	listErr error
}

func (f *fakeListsRepo) FindByID(context.Context, int64, int64) (*models.ShoppingList, error) {
	return nil, f.findErr
}

func (f *fakeListsRepo) List(context.Context, int64, models.PageQuery) (*models.Page[models.ShoppingList], error) {
	return nil, f.listErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRevokedRepo
	l *fakeListsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository { return m.r }
func (m *fakeRepoManager) ShoppingLists(dbx.DBTX) shoppinglists.Repository { return m.l }
func (m *fakeRepoManager) Items(dbx.DBTX) items.Repository                 { return nil }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}
