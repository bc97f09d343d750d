package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blackcloro/transaction-validator/internal"
	"github.com/blackcloro/transaction-validator/internal/domain/transaction"
	"github.com/blackcloro/transaction-validator/internal/validator"
	"github.com/blackcloro/transaction-validator/pkg/logger"
)

type TransactionHandler struct {
	validator *validator.TransactionValidator
}

func NewTransactionHandler(v *validator.TransactionValidator) *TransactionHandler {
	return &TransactionHandler{
		validator: v,
	}
}

type createTransactionRequest struct {
	TransactionID string           `json:"transaction_id"`
	AccountID     string           `json:"account_id"`
	Kind          transaction.Kind `json:"kind"`
	Amount        decimal.Decimal  `json:"amount"`
}

func (h *TransactionHandler) CreateTransaction(c fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.Bind().JSON(&req); err != nil {
		logger.Error("Invalid request body", err,
			"path", c.Path(),
			"method", c.Method(),
			"ip", c.IP())

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// Callers that cannot supply their own idempotency key get one; such a
	// request is never deduplicated against earlier submissions.
	if req.TransactionID == "" {
		req.TransactionID = uuid.NewString()
	}

	tx, err := transaction.New(req.TransactionID, req.AccountID, req.Kind, req.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	logger.Info("Processing transaction", "transactionID", tx.ID, "accountID", tx.AccountID)

	switch res := h.validator.Process(tx).(type) {
	case validator.Success:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":        "Transaction processed successfully",
			"transaction_id": tx.ID,
			"balance":        res.NewBalance,
		})
	case validator.DuplicateTransaction:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":          "Duplicate transaction",
			"transaction_id": res.TransactionID,
		})
	case validator.InsufficientFunds:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":            "Insufficient funds",
			"current_balance":  res.CurrentBalance,
			"requested_amount": res.RequestedAmount,
			"shortfall":        res.Shortfall,
		})
	case validator.InvalidInput:
		status := fiber.StatusBadRequest
		if errors.Is(res.Reason, internal.ErrAccountNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": res.Reason.Error(),
		})
	default:
		logger.Warn("Unhandled validation result", "transactionID", tx.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process transaction",
		})
	}
}
