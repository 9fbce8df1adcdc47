package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"officeBooker/internal/cli"
	"officeBooker/internal/config"
	"officeBooker/internal/lib/logger"
	"officeBooker/internal/lib/logger/sl"
	"officeBooker/internal/notification"
	"officeBooker/internal/services/booking"
	"officeBooker/internal/storage/postgres"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to the config file (defaults to $CONFIG_PATH)")
	pflag.Parse()

	var cfg *config.Config
	if *configPath == "" {
		cfg = config.MustLoad()
	} else {
		cfg = config.MustLoadPath(*configPath)
	}

	// logs go to stderr so the menu stays readable
	log := logger.Setup(cfg.Env, os.Stderr)

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error("failed to close postgres connection", sl.Err(err))
		}
	}()

	dispatcher, closeNotifier, err := notification.FromConfig(log, cfg.Notifications)
	if err != nil {
		log.Error("failed to init notifications", sl.Err(err))
		_ = storage.Close()
		os.Exit(1)
	}
	defer func() {
		if err := closeNotifier(); err != nil {
			log.Error("failed to close notification broker", sl.Err(err))
		}
	}()

	svc := booking.New(log, storage, dispatcher, cfg.Offices.Count)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()

	if err := cli.New(log, svc, cfg.Offices.Count, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Error("booking cli stopped", sl.Err(err))
	}
}
