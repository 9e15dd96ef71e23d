// Package server initializes and runs the shopkeeper login server.
// It selects storage and session backends from config, wires the login
// service, handles graceful shutdown and serves gRPC.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/shopkeeper/internal/cryptox"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/server/auth"
	"github.com/dmitrijs2005/shopkeeper/internal/server/challenges"
	"github.com/dmitrijs2005/shopkeeper/internal/server/config"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shopkeeper/internal/server/services"
	"github.com/dmitrijs2005/shopkeeper/internal/server/sessions"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/shopkeeper/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	redis    *redis.Client
	registry sessions.Registry
	logins   *services.LoginService
}

// NewApp validates c and opens every backend it names. Callers must Close
// the App when NewApp succeeds and Run is not called.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	app := &App{config: c, logger: logger}

	hasher := cryptox.NewHasher(c.PasswordPepper, cryptox.DefaultParams)

	rm, err := app.openStore(ctx, hasher)
	if err != nil {
		app.Close()
		return nil, err
	}

	if err := app.openRegistry(ctx); err != nil {
		app.Close()
		return nil, err
	}

	issuer := auth.NewIssuer([]byte(c.SecretKey), c.SessionTokenValidityDuration, c.SecondFactorTokenValidityDuration)
	tracker := challenges.NewDefaultTracker(rm.Challenges(app.db), rm.Users(app.db), c.ApplicationDomain, logger)

	app.logins = services.NewLoginService(app.db, rm, hasher, issuer, app.registry, tracker, logger)

	return app, nil
}

// openStore connects to PostgreSQL and migrates it, or falls back to
// seeded in-memory repositories when no DSN is configured.
func (app *App) openStore(ctx context.Context, hasher *cryptox.Hasher) (repomanager.RepositoryManager, error) {

	if app.config.DatabaseDSN == "" {
		app.logger.Warn(ctx, "No database configured, using in-memory repositories")
		m := memory.NewRepositoryManager()
		seedDemoUsers(m.UserStore(), hasher, app.config.ApplicationDomain)
		return m, nil
	}

	db, err := sql.Open("pgx", app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return rm, nil
}

func (app *App) openRegistry(ctx context.Context) error {

	switch app.config.SessionRegistry {
	case config.RegistryRedis:
		client := redis.NewClient(&redis.Options{Addr: app.config.RedisAddr})
		app.redis = client
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping error: %w", err)
		}
		app.registry = sessions.NewRedisRegistry(client, "")
	default:
		app.registry = sessions.NewMemoryRegistry()
	}

	return nil
}

// seedDemoUsers gives the in-memory store the stock accounts so the
// server is usable without a database.
func seedDemoUsers(store *memory.UserRepository, hasher *cryptox.Hasher, domain string) {
	for _, u := range []struct{ name, password, role string }{
		{"admin", "admin123", "admin"},
		{"jim", "ncc-1701", "customer"},
		{"bender", "OhG0dPlease1nsertLiquor!", "customer"},
	} {
		store.Add(models.User{
			Email:          u.name + "@" + domain,
			PasswordDigest: hasher.Hash(u.password),
			Role:           u.role,
		})
	}
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.logins)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives, or the server fails.
// Backends are closed on return.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if mr, ok := app.registry.(*sessions.MemoryRegistry); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mr.Run(ctx, sessions.DefaultSweepInterval)
		}()
	}

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "closing backends", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}

// Close releases the database and redis connections, if any.
func (app *App) Close() error {
	var errs []error
	if app.db != nil {
		errs = append(errs, app.db.Close())
		app.db = nil
	}
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
		app.redis = nil
	}
	return errors.Join(errs...)
}
