package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"

	"github.com/blackcloro/transaction-validator/internal/api/handlers"
)

func SetupRoutes(app *fiber.App, ah *handlers.AccountHandler, th *handlers.TransactionHandler) {
	api := app.Group("/api/v1")

	api.Post("/accounts", ah.CreateAccount)
	api.Get("/accounts/:id", ah.GetAccount)
	api.Post("/transactions", th.CreateTransaction)
	// Check if the server is up and running.
	api.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
}
