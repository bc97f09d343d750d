package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/blackcloro/transaction-validator/internal/api/handlers"
	"github.com/blackcloro/transaction-validator/internal/config"
	"github.com/blackcloro/transaction-validator/internal/validator"
)

type Server struct {
	app    *fiber.App
	config *config.Config
}

func NewServer(cfg *config.Config, v *validator.TransactionValidator) *Server {
	app := fiber.New()
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:               20,
		Expiration:        30 * time.Second,
		LimiterMiddleware: limiter.SlidingWindow{},
	}))

	accountHandler := handlers.NewAccountHandler(v)
	transactionHandler := handlers.NewTransactionHandler(v)

	SetupRoutes(app, accountHandler, transactionHandler)

	return &Server{
		app:    app,
		config: cfg,
	}
}

// App exposes the underlying fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	slog.Info("Starting server", "env", s.config.Env, "address", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownComplete := make(chan struct{})

	var shutdownErr error
	go func() {
		defer close(shutdownComplete)
		shutdownErr = s.app.ShutdownWithContext(ctx)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-shutdownComplete:
		if shutdownErr != nil {
			slog.Error("Error during shutdown", "error", shutdownErr)
		}
		return shutdownErr
	}
}
