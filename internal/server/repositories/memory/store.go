// Package memory is an in-process storage backend implementing the same
// repository interfaces as the PostgreSQL one. It backs the "memory"
// storage mode and the end-to-end HTTP tests.
package memory

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"sync"

	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
)

// ErrNoSQL is what Conn fails with for every statement.
var ErrNoSQL = errors.New("memory store does not execute SQL")

// Conn is the DBTX handed to repository factories and transaction bodies.
// The memory repositories ignore it; it only exists to satisfy dbx.DBTX.
// QueryRowContext panics because a *sql.Row cannot carry an error built
// outside database/sql.
type Conn struct{}

func (Conn) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, ErrNoSQL
}

func (Conn) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, ErrNoSQL
}

func (Conn) QueryRowContext(context.Context, string, ...any) *sql.Row {
	panic(ErrNoSQL)
}

var _ dbx.DBTX = Conn{}

type data struct {
	users   map[int64]models.User
	lists   map[int64]models.ShoppingList
	items   map[int64]models.Item
	revoked map[string]models.RevokedToken
	lastID  int64
}

func (d *data) clone() data {
	return data{
		users:   maps.Clone(d.users),
		lists:   maps.Clone(d.lists),
		items:   maps.Clone(d.items),
		revoked: maps.Clone(d.revoked),
		lastID:  d.lastID,
	}
}

// Store holds all tables. mu guards the data; txMu serializes
// transactions so a rollback never discards another transaction's writes.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	d    data
}

func NewStore() *Store {
	return &Store{d: data{
		users:   map[int64]models.User{},
		lists:   map[int64]models.ShoppingList{},
		items:   map[int64]models.Item{},
		revoked: map[string]models.RevokedToken{},
	}}
}

// nextID must be called with mu held for writing.
func (s *Store) nextID() int64 {
	s.d.lastID++
	return s.d.lastID
}

// WithTx runs fn against the store and restores the previous state if fn
// fails or panics.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.d.clone()
	s.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	return fn(ctx, Conn{})
}

func (s *Store) restore(snapshot data) {
	s.mu.Lock()
	s.d = snapshot
	s.mu.Unlock()
}

var _ dbx.Transactor = (*Store)(nil)
