package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"transit_api/internal/config"
	"transit_api/internal/controllers"
	"transit_api/internal/logger"
	"transit_api/internal/repository"
	"transit_api/internal/routes"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out, err := logger.Setup(logger.Options{
		File:   cfg.Log.File,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Stdout: cfg.Log.Stdout,
	})
	if err != nil {
		return err
	}

	db, err := config.OpenDatabase(cfg.Database)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	store := repository.NewStore(db)
	hub := controllers.NewPositionHub(100)
	defer hub.Close()

	r := routes.SetupRouter(store, hub, routes.Options{
		JWTSecret:   []byte(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		AccessLog:   out,

		AdminUser:         cfg.AdminUser,
		AdminPasswordHash: cfg.AdminPasswordHash,
		TokenTTL:          cfg.TokenTTL,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
