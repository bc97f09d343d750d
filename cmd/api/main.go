package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackcloro/transaction-validator/internal/api"
	"github.com/blackcloro/transaction-validator/internal/config"
	"github.com/blackcloro/transaction-validator/internal/validator"
	"github.com/blackcloro/transaction-validator/internal/worker"
	"github.com/blackcloro/transaction-validator/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger()

	v := validator.New()

	seeds, err := cfg.SeedAccounts()
	if err != nil {
		logger.Fatal("Failed to parse seed accounts", err)
	}
	for _, seed := range seeds {
		if _, err := v.CreateAccount(seed.ID, seed.Balance); err != nil {
			logger.Fatal("Failed to seed account", err, "accountID", seed.ID)
		}
		logger.Info("Seeded account", "accountID", seed.ID, "balance", seed.Balance)
	}

	server := api.NewServer(cfg, v)

	auditWorker := worker.NewWorker(v, cfg.Audit.Interval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go auditWorker.Start(ctx)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server exiting")
}
