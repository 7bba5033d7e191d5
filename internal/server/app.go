// Package server initializes and runs the auth backend: storage, password
// hashing, token issuing, optional event publishing and the HTTP API.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/api"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/events"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage *repomanager.Storage
	redis   *redis.Client
	server  *api.Server
}

// NewApp opens storage, connects to Redis when configured and builds the HTTP
// server. Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(w, c.LogLevel)
	app := &App{config: c, logger: logger}

	storage, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.storage = storage
	logger.Info(ctx, "storage ready", "kind", storage.Kind)

	var publisher events.Publisher = events.NopPublisher{}
	if c.RedisAddr != "" {
		rdb, err := events.NewRedisClient(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		app.redis = rdb
		publisher = events.NewRedisPublisher(rdb, c.EventsStream)
	}

	issuer, err := auth.NewIssuer([]byte(c.SecretKey))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	svc, err := services.NewCredentialService(
		storage.Accounts,
		cryptox.NewArgon2idHasher(cryptox.DefaultParams),
		issuer,
		publisher,
		logger,
	)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("credential service init error: %w", err)
	}

	app.server = api.NewServer(c.EndpointAddrHTTP, logger, svc, issuer, c.RequestTimeout)
	return app, nil
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

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	app.Close()

	app.logger.Info(ctx, "App stopped")
	return err
}

// Close releases storage and Redis connections. Safe to call twice.
func (app *App) Close() {
	if app.storage != nil {
		if err := app.storage.Close(); err != nil {
			app.logger.Error(context.Background(), "storage close error", "error", err)
		}
		app.storage = nil
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(context.Background(), "redis close error", "error", err)
		}
		app.redis = nil
	}
}
