package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flipperhq/flipper-backend/internal/app"
	"github.com/flipperhq/flipper-backend/internal/config"
	"github.com/flipperhq/flipper-backend/internal/database"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	migrate := flag.Bool("migrate", false, "Apply database migrations and exit")
	createAdmin := flag.Bool("create-admin", false, "Create the default admin account and exit")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if *migrate {
		if err := database.EnsureSchema(cfg); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		logger.Info("database schema is up to date")
		if !*createAdmin {
			return
		}
	}

	if *createAdmin {
		runCreateAdmin(logger, cfg)
		return
	}

	application, err := app.New(logger, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    application.Addr(),
		Handler: application.Router(),
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

func runCreateAdmin(logger *zap.Logger, cfg *config.AppConfig) {
	db, err := database.Connect(cfg, true)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	created, err := database.SeedDefaultAdmin(db, cfg.BcryptCost)
	if err != nil {
		logger.Fatal("failed to create admin account", zap.Error(err))
	}
	if created {
		logger.Info("default admin account created; change its password after first login")
	} else {
		logger.Info("admin account already exists, nothing to do")
	}
}
