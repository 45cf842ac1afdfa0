// Command create-admin creates a back office administrator, or resets the
// password of an existing one.
//
//	ADMIN_PASSWORD=... go run ./cmd/create-admin -email owner@example.com -name "店長"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/config"
	"github.com/kintai-works/kintai-backend-go/internal/domain/user"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-works/kintai-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/kintai-works/kintai-backend-go/internal/service/auth"
)

func main() {
	email := flag.String("email", "", "administrator email")
	name := flag.String("name", "", "display name")
	password := flag.String("password", "", "password (defaults to $ADMIN_PASSWORD)")
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}

	if err := run(user.CreateAdminRequest{Email: *email, Name: *name, Password: *password}); err != nil {
		slog.Error("create-admin failed", "error", err)
		os.Exit(1)
	}
}

func run(req user.CreateAdminRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: 2, MinConns: 1})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	hash, err := serviceAuth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users := postgresql.NewUserRepository(db)
	existing, err := users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if err := users.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return err
		}
		slog.Info("administrator password updated", "user_id", existing.ID, "email", existing.Email)
		return nil
	case !errors.Is(err, user.ErrUserNotFound):
		return err
	}

	created, err := users.Create(ctx, user.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hash,
		IsActive:     true,
	})
	if err != nil {
		return err
	}
	slog.Info("administrator created", "user_id", created.ID, "email", created.Email)
	return nil
}
