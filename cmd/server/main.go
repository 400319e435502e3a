package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctchen222/Tic-Tac-Toe-N/internal/api/controller"
	"ctchen222/Tic-Tac-Toe-N/internal/api/repository"
	"ctchen222/Tic-Tac-Toe-N/internal/api/service"
	"ctchen222/Tic-Tac-Toe-N/internal/config"
	"ctchen222/Tic-Tac-Toe-N/internal/db"
	"ctchen222/Tic-Tac-Toe-N/internal/logger"
	"ctchen222/Tic-Tac-Toe-N/internal/server"
	"ctchen222/Tic-Tac-Toe-N/internal/session"
	"ctchen222/Tic-Tac-Toe-N/internal/store"
	"ctchen222/Tic-Tac-Toe-N/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to an optional YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		StdoutTraces: cfg.Telemetry.StdoutTraces,
	})
	if err != nil {
		slog.Error("Failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()
	logger.Init(cfg.LogLevel, cfg.Telemetry.Enabled)

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	// Initialize SQLite DB
	conn, err := db.Connect(cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.InitializeDB(ctx, conn); err != nil {
		return err
	}

	var (
		profiles store.Backend
		notifier server.Notifier
	)
	switch cfg.StoreBackend {
	case config.BackendRedis:
		rdb, err := db.NewRedisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		redisBackend := store.NewRedisBackend(rdb)
		profiles, notifier = redisBackend, redisBackend
	case config.BackendSQLite:
		profiles = store.NewSQLiteBackend(conn)
	default:
		profiles = store.NewMemoryBackend()
	}
	slog.InfoContext(ctx, "Profile store ready", "store.backend", cfg.StoreBackend)

	if cfg.UsesDefaultJWTSecret() {
		slog.WarnContext(ctx, "JWT_SECRET is not set, tokens are signed with the default key")
	}
	users := service.NewUserService(repository.NewUserRepository(conn), []byte(cfg.JWTSecret))

	srv := server.NewServer(server.Deps{
		Users:          users,
		UserController: controller.NewUserController(users, profiles),
		Profiles:       profiles,
		Notifier:       notifier,
		Options: session.Options{
			InitialSize:   cfg.Game.DefaultSize,
			MaxSize:       cfg.Game.MaxSize,
			ResetDelay:    cfg.Game.ResetDelay,
			ComputerDelay: cfg.Game.ComputerDelay,
		},
		WebDir: cfg.WebDir,
	})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "HTTP server started", "http.addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("Server exiting")
	return nil
}
