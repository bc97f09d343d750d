package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"

	"github.com/blackcloro/transaction-validator/internal"
	"github.com/blackcloro/transaction-validator/internal/validator"
	"github.com/blackcloro/transaction-validator/pkg/logger"
)

type AccountHandler struct {
	validator *validator.TransactionValidator
}

func NewAccountHandler(v *validator.TransactionValidator) *AccountHandler {
	return &AccountHandler{
		validator: v,
	}
}

type createAccountRequest struct {
	ID             string          `json:"id"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

func (h *AccountHandler) CreateAccount(c fiber.Ctx) error {
	var req createAccountRequest
	if err := c.Bind().JSON(&req); err != nil {
		logger.Error("Invalid request body", err,
			"path", c.Path(),
			"method", c.Method(),
			"ip", c.IP())

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	acc, err := h.validator.CreateAccount(req.ID, req.InitialBalance)
	if err != nil {
		if errors.Is(err, internal.ErrDuplicateAccount) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Account already exists",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	logger.Info("Account created", "accountID", acc.ID(), "balance", acc.Balance())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      acc.ID(),
		"balance": acc.Balance(),
	})
}

func (h *AccountHandler) GetAccount(c fiber.Ctx) error {
	acc, ok := h.validator.GetAccount(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":              acc.ID(),
		"balance":         acc.Balance(),
		"processed_count": acc.ProcessedCount(),
	})
}
