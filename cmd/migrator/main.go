package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"officeBooker/internal/config"
	"officeBooker/internal/lib/logger"
	"officeBooker/internal/lib/logger/sl"
	"officeBooker/internal/migrator"
	"officeBooker/migrations"
)

func main() {
	var (
		configPath    string
		directionFlag string
		steps         int
		dir           string
	)

	pflag.StringVarP(&configPath, "config", "c", "", "path to the config file (defaults to $CONFIG_PATH)")
	pflag.StringVarP(&directionFlag, "direction", "d", string(migrator.Up), "migration direction: up, down or status")
	pflag.IntVarP(&steps, "steps", "s", 1, "number of versions to roll back when migrating down")
	pflag.StringVar(&dir, "dir", "", "directory with migration scripts (defaults to the embedded ones)")
	pflag.Parse()

	var cfg *config.Config
	if configPath == "" {
		cfg = config.MustLoad()
	} else {
		cfg = config.MustLoadPath(configPath)
	}

	log := logger.Setup(cfg.Env, os.Stdout)

	direction, err := migrator.ParseDirection(directionFlag)
	if err != nil {
		log.Error("bad direction", sl.Err(err))
		os.Exit(2)
	}

	var scripts fs.FS = migrations.FS
	switch {
	case dir != "":
		scripts = os.DirFS(dir)
	case cfg.Migrations.Dir != "":
		scripts = os.DirFS(cfg.Migrations.Dir)
	}

	log.Info("running migrations", slog.String("direction", string(direction)), slog.Int("steps", steps))

	if err := migrator.Run(context.Background(), &cfg.Database, scripts, log, direction, steps); err != nil {
		log.Error("migration failed", sl.Err(err))
		os.Exit(1)
	}

	log.Info("migration finished")
}
