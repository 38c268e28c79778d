package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/logging"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

const seedTimeout = 30 * time.Second

// seedResult reports what seedAdmin did.
type seedResult string

const (
	adminCreated   seedResult = "created"
	adminPromoted  seedResult = "promoted"
	adminUnchanged seedResult = "unchanged"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel).With("component", "seed")

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	log.Info(ctx, "starting seed script")
	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "seed failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	client, err := db.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn(ctx, "mongodb disconnect", "error", err)
		}
	}()
	database := client.Database(cfg.MongoDatabase)

	if err := db.EnsureIndexes(ctx, database); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(database)
	result, err := seedAdmin(ctx, userRepo, cfg.AdminEmail, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return err
	}

	log.Info(ctx, "seed completed", "email", cfg.AdminEmail, "result", string(result))
	return nil
}

// seedAdmin creates an administrator, or promotes the existing user with that email.
// Running it again is a no-op.
func seedAdmin(ctx context.Context, repo repository.UserRepository, email, username, password string) (seedResult, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("error checking user %s: %w", email, err)
	}

	if existing != nil {
		if existing.IsAdmin {
			return adminUnchanged, nil
		}
		existing.IsAdmin = true
		if err := repo.Update(ctx, existing); err != nil {
			return "", fmt.Errorf("error promoting user %s: %w", email, err)
		}
		return adminPromoted, nil
	}

	if _, err := repo.FindByUsername(ctx, username); err == nil {
		return "", fmt.Errorf("username %q is taken by another account", username)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("error checking username %s: %w", username, err)
	}

	hashed, err := service.HashPassword(password)
	if err != nil {
		return "", err
	}
	admin := &model.User{
		Email:    email,
		Username: username,
		Password: hashed,
		IsAdmin:  true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return "", fmt.Errorf("error creating user %s: %w", email, err)
	}
	return adminCreated, nil
}
