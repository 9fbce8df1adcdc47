package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"officeBooker/internal/config"
	"officeBooker/internal/http-server/handlers/office/bookOffice"
	"officeBooker/internal/http-server/handlers/office/checkAvailability"
	"officeBooker/internal/http-server/handlers/office/listBookings"
	"officeBooker/internal/http-server/middleware/mwlogger"
	"officeBooker/internal/lib/logger"
	"officeBooker/internal/lib/logger/sl"
	"officeBooker/internal/migrator"
	"officeBooker/internal/notification"
	"officeBooker/internal/services/booking"
	"officeBooker/internal/storage/postgres"
	"officeBooker/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := pflag.StringP("config", "c", "", "path to the config file (defaults to $CONFIG_PATH)")
	pflag.Parse()

	cfg := loadConfig(*configPath)

	log := logger.Setup(cfg.Env, os.Stdout)

	log.Info("Starting office booker", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	if cfg.Migrations.AutoMigrate {
		applied, err := migrator.New(storage.DB, migrationScripts(cfg), log).Up(context.Background())
		if err != nil {
			log.Error("failed to apply migrations", sl.Err(err))
			os.Exit(1)
		}
		log.Info("migrations applied", slog.Int("count", len(applied)))
	}

	dispatcher, closeNotifier, err := notification.FromConfig(log, cfg.Notifications)
	if err != nil {
		log.Error("failed to init notifications", sl.Err(err))
		os.Exit(1)
	}

	bookingService := booking.New(log, storage, dispatcher, cfg.Offices.Count)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Route("/offices/{number}", func(r chi.Router) {
		r.Get("/availability", checkAvailability.New(log, bookingService))
		r.Post("/bookings", bookOffice.New(log, bookingService))
		r.Get("/bookings", listBookings.New(log, bookingService))
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = closeNotifier(); err != nil {
		log.Error("failed to close notification broker", sl.Err(err))
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.MustLoad()
	}

	return config.MustLoadPath(path)
}

func migrationScripts(cfg *config.Config) fs.FS {
	if cfg.Migrations.Dir != "" {
		return os.DirFS(cfg.Migrations.Dir)
	}

	return migrations.FS
}
