// Command resetpw resets a user's password from the command line. It goes
// through the same credential store as the login path, so the stored hash
// always matches what the server expects to verify.
//
// Usage:
//
//	MONGO_URI=mongodb://localhost:27017 resetpw -username admin -password 'new-secret'
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retailcore/inventory-system/internal/core/service"
	"github.com/retailcore/inventory-system/internal/infrastructure/config"
	"github.com/retailcore/inventory-system/internal/infrastructure/db/memory"
	mongodb "github.com/retailcore/inventory-system/internal/infrastructure/db/mongo"
	"github.com/retailcore/inventory-system/internal/infrastructure/queue"
	"github.com/retailcore/inventory-system/pkg/logger"
)

func main() {
	username := flag.String("username", "", "username whose password to reset")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: resetpw -username <name> -password <new password>")
		os.Exit(2)
	}

	log := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("configuration error")
		os.Exit(1)
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Error().Err(err).Msg("mongodb unavailable")
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	pool := queue.NewHashPool(1, log)
	defer pool.Close()

	users := mongodb.NewUserRepository(db)
	creds := service.NewCredentialStore(cfg.BcryptCost, pool, log)
	registry := service.NewRoleRegistry(mongodb.NewRoleRepository(db))
	index := service.NewStoreAssignmentIndex(mongodb.NewAssignmentRepository(db))
	sessions := service.NewSessionManager(memory.NewSessionStore(), cfg.SessionTTL, false)
	auth := service.NewAuthService(users, registry, index, sessions, creds, log)

	if err := auth.ResetPassword(ctx, *username, *password); err != nil {
		log.Error().Err(err).Str("username", *username).Msg("password reset failed")
		os.Exit(1)
	}

	fmt.Printf("password updated for %s\n", *username)
}
