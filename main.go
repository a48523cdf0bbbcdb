package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"notes-api/config"
	"notes-api/db"
	"notes-api/handlers"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logrus.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logrus.Info("connecting to MongoDB")
	database, err := db.Open(openCtx, cfg.MongoURI, cfg.Database)
	if err != nil {
		return err
	}
	logrus.Info("connected to MongoDB")

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.NewRouter(database.Notes(), database.Users()),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	logrus.Infof("Server running on port %s", cfg.Port)

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serving")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutting down server")
	}
	return database.Close(shutdownCtx)
}
