package transaction

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/blackcloro/transaction-validator/internal"
)

type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	// KindTransfer is applied as a withdrawal against the source account;
	// the destination leg is settled elsewhere.
	KindTransfer Kind = "transfer"
)

// Transaction is an immutable request descriptor. Build one with New; a value
// that came out of New is fully validated and is never mutated afterwards.
type Transaction struct {
	ID        string          `json:"transaction_id" validate:"required"`
	AccountID string          `json:"account_id" validate:"required"`
	Kind      Kind            `json:"kind" validate:"required,oneof=deposit withdrawal transfer"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

var validate = validator.New()

func New(id, accountID string, kind Kind, amount decimal.Decimal) (*Transaction, error) {
	t := &Transaction{
		ID:        strings.TrimSpace(id),
		AccountID: strings.TrimSpace(accountID),
		Kind:      kind,
		Amount:    amount,
		Timestamp: time.Now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the structural invariants. The amount check lives here
// rather than in a struct tag because validator has no positivity rule for
// decimal.Decimal.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return internal.ErrBlankTransactionID
	}
	if strings.TrimSpace(t.AccountID) == "" {
		return internal.ErrBlankAccountID
	}
	if !t.Amount.IsPositive() {
		return internal.ErrNonPositiveAmount
	}
	return validate.Struct(t)
}
