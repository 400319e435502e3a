package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/Tic-Tac-Toe-N/internal/bot"
	"ctchen222/Tic-Tac-Toe-N/internal/config"
	"ctchen222/Tic-Tac-Toe-N/internal/db"
	"ctchen222/Tic-Tac-Toe-N/internal/logger"
	"ctchen222/Tic-Tac-Toe-N/internal/session"
	"ctchen222/Tic-Tac-Toe-N/internal/store"
	"ctchen222/Tic-Tac-Toe-N/internal/terminal"

	"github.com/muesli/termenv"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to an optional YAML config file")
	dbPath := flag.String("db", "", "SQLite file keeping scores between runs (in memory when empty)")
	profileID := flag.String("profile", "local", "profile whose scores and names are used")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	// Logs go to stderr so they never interleave with the board.
	slog.SetDefault(logger.New(os.Stderr, logger.ParseLevel(cfg.LogLevel), false))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *dbPath, *profileID); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dbPath, profileID string) error {
	var profiles store.Backend = store.NewMemoryBackend()
	if dbPath != "" {
		conn, err := db.Connect(dbPath)
		if err != nil {
			return err
		}
		defer conn.Close()
		if err := db.InitializeDB(ctx, conn); err != nil {
			return err
		}
		profiles = store.NewSQLiteBackend(conn)
	}

	seed, err := bot.NewSeed()
	if err != nil {
		return err
	}

	p := terminal.NewPresenter(os.Stdout, termenv.EnvColorProfile())
	sess, err := session.New("cli", store.Open(profiles, profileID), p, session.TimerScheduler{}, bot.NewRandomMover(seed), session.Options{
		InitialSize:   cfg.Game.DefaultSize,
		MaxSize:       cfg.Game.MaxSize,
		ResetDelay:    cfg.Game.ResetDelay,
		ComputerDelay: cfg.Game.ComputerDelay,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.Start(ctx)
	return terminal.Run(ctx, os.Stdin, sess, p)
}
