package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/dungeonrpg/internal/ai"
	"github.com/udisondev/dungeonrpg/internal/config"
	"github.com/udisondev/dungeonrpg/internal/data"
	"github.com/udisondev/dungeonrpg/internal/db"
)

const ConfigPath = "config/battlesim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("DUNGEON_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading simulator config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("battle simulator starting",
		"log_level", cfg.LogLevel,
		"difficulty", cfg.Difficulty,
		"battles", cfg.Simulation.Battles)

	set, err := data.LoadFile(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	content, err := data.NewCatalog(set)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}

	sim := newSimulator(cfg, content)

	var battles *db.BattleRepository
	if cfg.Database.Enabled {
		dsn := cfg.Database.DSN()
		if cfg.Database.Migrate {
			if err := db.RunMigrations(ctx, dsn); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
		}

		database, err := db.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if cfg.Database.SeedTemplates {
			if err := database.Templates().SaveAll(ctx, content.Enemies()); err != nil {
				return fmt.Errorf("seeding enemy templates: %w", err)
			}
		}
		sim.catalog = database.Templates()
		battles = database.Battles()
		sim.recorder = battles
		slog.Info("database enabled", "host", cfg.Database.Host, "db", cfg.Database.DBName)
	}

	if sim.seed == 0 {
		sim.seed = rand.Uint64()
	}

	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	report.Log()

	if battles != nil {
		counts, err := battles.CountByOutcome(ctx)
		if err != nil {
			return fmt.Errorf("counting recorded battles: %w", err)
		}
		slog.Info("recorded battles", "counts", counts)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
