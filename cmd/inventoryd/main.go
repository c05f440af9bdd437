// Command inventoryd runs the authentication and store-scoped authorization
// service for the inventory system.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/retailcore/inventory-system/internal/api"
	"github.com/retailcore/inventory-system/internal/core/ports"
	"github.com/retailcore/inventory-system/internal/core/service"
	"github.com/retailcore/inventory-system/internal/infrastructure/config"
	"github.com/retailcore/inventory-system/internal/infrastructure/db/memory"
	redisdb "github.com/retailcore/inventory-system/internal/infrastructure/db/redis"
	httpserver "github.com/retailcore/inventory-system/internal/infrastructure/http"
	"github.com/retailcore/inventory-system/internal/infrastructure/queue"
	"github.com/retailcore/inventory-system/pkg/logger"

	goredis "github.com/redis/go-redis/v9"

	mongodb "github.com/retailcore/inventory-system/internal/infrastructure/db/mongo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bootstrap logger first so configuration failures are structured too.
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") != "production",
	})

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("configuration error")
		os.Exit(1)
	}

	// --- Persistence ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Error().Err(err).Msg("mongodb unavailable")
		os.Exit(1)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	roles := mongodb.NewRoleRepository(db)
	stores := mongodb.NewStoreRepository(db)
	assignments := mongodb.NewAssignmentRepository(db)

	// Sessions live in Redis when an address is configured (they survive
	// restarts, bounded by TTL); otherwise in process memory.
	var (
		sessionStore ports.SessionStore
		rdb          *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Error().Err(err).Msg("redis unavailable")
			os.Exit(1)
		}
		defer func() { _ = rdb.Close() }()
		sessionStore = redisdb.NewSessionStore(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, sessions are in-memory and will not survive a restart")
		sessionStore = memory.NewSessionStore()
	}

	// --- Core services ---
	pool := queue.NewHashPool(cfg.HashWorkers, log)
	defer pool.Close()

	creds := service.NewCredentialStore(cfg.BcryptCost, pool, log)
	registry := service.NewRoleRegistry(roles)
	index := service.NewStoreAssignmentIndex(assignments)
	if err := index.Load(ctx); err != nil {
		log.Error().Err(err).Msg("failed to warm assignment index")
		os.Exit(1)
	}
	sessions := service.NewSessionManager(sessionStore, cfg.SessionTTL, cfg.SessionSliding)
	guard := service.NewAuthorizationGuard(sessions, users, registry, index)
	auth := service.NewAuthService(users, registry, index, sessions, creds, log)

	// --- HTTP ---
	router := api.NewRouter(
		api.RouterConfig{CookieName: cfg.CookieName, SecureCookies: cfg.SecureCookies()},
		api.Dependencies{
			Auth:   auth,
			Guard:  guard,
			Index:  index,
			Users:  users,
			Stores: stores,
			Mongo:  db,
			Redis:  rdb,
			Log:    log,
		},
	)

	srv := httpserver.NewServer(":"+cfg.Port, router, log)
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("http server failed")
		os.Exit(1)
	}
	log.Info().Msg("stopped")
}
