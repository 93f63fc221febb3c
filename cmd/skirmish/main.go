// Package main is the entry point for Skirmish.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/voidmaw/skirmish/internal/game"
	"github.com/voidmaw/skirmish/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "skirmish.yaml", "path to the config file")
	flag.Parse()

	// Pull in .env for local development; variables may also be set
	// directly in the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("note: .env not loaded: %v", err)
	}

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	ctx := context.Background()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// The game still works without observability.
			logger.Warn("telemetry setup failed, running without traces", "err", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error("telemetry shutdown", "err", err)
				}
			}()
		}
	}

	g, err := game.New(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("game error: %v", err)
	}
}

// openLogger routes structured logs to the configured file. The terminal
// belongs to the game, so an empty path discards them.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, func() { f.Close() }, nil
}
