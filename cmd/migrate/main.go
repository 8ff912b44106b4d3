package main

import (
	"log/slog"
	"os"

	"github.com/ghuser/gardenhub/migrations/garden"
	"github.com/ghuser/gardenhub/pkg/config"
	"github.com/ghuser/gardenhub/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, garden.FS); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
