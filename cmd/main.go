package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/taskloop/todo-backend/internal/auth"
	"github.com/taskloop/todo-backend/internal/database"
	"github.com/taskloop/todo-backend/internal/env"
	"github.com/taskloop/todo-backend/internal/todo"
	"github.com/taskloop/todo-backend/internal/user"
)

func main() {
	env.Init()

	ctx := context.Background()

	cfg := config{
		addr: env.GetString("API_PORT", ":8000"),
		db: dbConfig{
			dsn: env.GetString("DATABASE_URL", "host=localhost port=5432 user=postgres password=postgres dbname=todos sslmode=disable"),
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	pool, err := database.Connect(ctx, cfg.db.dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	slog.Info("database pool connected")

	if err := database.Migrate(ctx, pool); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	accessTTL := time.Duration(env.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute
	refreshTTL := time.Duration(env.GetInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour

	tokenSvc := auth.NewTokenService(
		env.GetString("JWT_SECRET", "dev-secret"),
		accessTTL,
		refreshTTL,
	)

	userRepo := user.NewRepository(pool)
	authSvc := auth.NewService(userRepo)

	todoRepo := todo.NewRepository(pool)
	todoSvc := todo.NewService(todoRepo)

	api := application{
		config:       cfg,
		db:           pool,
		authService:  authSvc,
		tokenService: tokenSvc,
		todoService:  todoSvc,
	}

	if err := api.run(ctx, api.mount()); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
