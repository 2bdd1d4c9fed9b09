// Package server wires the shopping-list backend together: storage,
// migrations, token codec, services and the HTTP API. It runs the HTTP
// server until the process is signalled and then shuts it down gracefully.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/logging"
	"github.com/dmitrijs2005/shoppinglist/internal/server/auth"
	"github.com/dmitrijs2005/shoppinglist/internal/server/config"
	"github.com/dmitrijs2005/shoppinglist/internal/server/httpapi"
	"github.com/dmitrijs2005/shoppinglist/internal/server/metrics"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/memory"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shoppinglist/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage *storage
	server  *httpapi.Server
}

// storage is one opened backend: the handle services read through, how to
// open transactions on it, and its repositories.
type storage struct {
	db     dbx.DBTX
	tx     dbx.Transactor
	repos  repomanager.RepositoryManager
	health func(context.Context) error
	close  func() error
}

func openStorage(ctx context.Context, c *config.Config) (*storage, error) {
	switch c.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		return &storage{
			db:    memory.Conn{},
			tx:    store,
			repos: repomanager.NewInMemoryRepositoryManager(store),
			close: func() error { return nil },
		}, nil

	case config.StoragePostgres:
		db, err := sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("db ping error: %w", err)
		}

		repos := repomanager.NewPostgresRepositoryManager()
		if err := repos.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}

		return &storage{
			db:     db,
			tx:     dbx.NewTransactor(db, nil),
			repos:  repos,
			health: db.PingContext,
			close:  db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", c.Storage)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	secret := c.SecretKey
	if secret == "" {
		var err error
		secret, err = auth.GenerateSecret()
		if err != nil {
			return nil, fmt.Errorf("secret key generation error: %w", err)
		}
		logger.Warn(ctx, "no secret key configured, tokens will not survive a restart")
	}

	st, err := openStorage(ctx, c)
	if err != nil {
		return nil, err
	}

	codec := auth.NewCodec([]byte(secret), c.TokenTTL)
	hasher := auth.NewBcryptHasher(c.BcryptCost)

	us := services.NewUserService(st.db, st.tx, st.repos, hasher, codec)
	ls := services.NewShoppingListService(st.db, st.tx, st.repos)
	is := services.NewItemService(st.db, st.tx, st.repos)

	gin.SetMode(gin.ReleaseMode)
	api := httpapi.NewAPI(httpapi.Deps{
		Users:   us,
		Lists:   ls,
		Items:   is,
		Gate:    auth.NewGate(us, codec),
		Metrics: metrics.NewMetrics(),
		Health:  st.health,
		Logger:  logger,
	})

	return &App{
		config:  c,
		logger:  logger,
		storage: st,
		server:  httpapi.NewServer(c.ServerAddress, logger, api.Router()),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or the process receives SIGINT,
// SIGTERM or SIGQUIT, then closes the storage.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.storage.close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
