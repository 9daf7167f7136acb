package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel/internal/config"
	"hotel/internal/database"
	"hotel/internal/modules/booking"
	"hotel/internal/pkg/events"
	"hotel/internal/pkg/logger"
	"hotel/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.IsProdLike(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("database migrate failed", zap.Error(err))
	}

	var publisher booking.EventPublisher
	if cfg.RabbitMQURL != "" {
		p, err := events.NewPublisher(cfg.RabbitMQURL, zl)
		if err != nil {
			zl.Fatal("rabbitmq connect failed", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	} else {
		zl.Info("RABBITMQ_URL not set, booking events disabled")
	}

	var revoker revocationStore
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		d, err := session.NewDenylist(ctx, session.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cancel()
		if err != nil {
			zl.Fatal("redis connect failed", zap.Error(err))
		}
		defer func() { _ = d.Close() }()
		revoker = d
	} else {
		zl.Info("REDIS_ADDR not set, logout will not revoke tokens")
	}

	a := newApp(cfg, zl, db, publisher, revoker)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	zl.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(srv, quit, zl); err != nil {
		zl.Error("server failed", zap.Error(err))
		exitCode = 1
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	zl.Info("server stopped")
}

// serve runs srv until it fails or a signal arrives on quit, then shuts it
// down gracefully. It never exits the process.
func serve(srv *http.Server, quit <-chan os.Signal, zl *zap.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case sig := <-quit:
		zl.Info("server is shutting down", zap.String("signal", sig.String()))
	case runErr = <-serverErr:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	return runErr
}
