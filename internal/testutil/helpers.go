package testutil

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/blackcloro/transaction-validator/internal/domain/transaction"
	"github.com/blackcloro/transaction-validator/internal/validator"
)

// GenerateDeposits builds count deposit transactions against accountID with
// distinct ids and amounts 10, 20, 30, ...
func GenerateDeposits(count int, accountID string) []*transaction.Transaction {
	txs := make([]*transaction.Transaction, count)
	for i := 0; i < count; i++ {
		tx, err := transaction.New(
			fmt.Sprintf("t%d", i+1),
			accountID,
			transaction.KindDeposit,
			decimal.NewFromInt(int64(i+1)*10),
		)
		if err != nil {
			panic(err)
		}
		txs[i] = tx
	}
	return txs
}

// ResultCounts tallies a batch of validation results by variant.
type ResultCounts struct {
	Success           int
	InsufficientFunds int
	Duplicate         int
	InvalidInput      int
}

func CountResults(results []validator.ValidationResult) ResultCounts {
	var c ResultCounts
	for _, res := range results {
		switch res.(type) {
		case validator.Success:
			c.Success++
		case validator.InsufficientFunds:
			c.InsufficientFunds++
		case validator.DuplicateTransaction:
			c.Duplicate++
		case validator.InvalidInput:
			c.InvalidInput++
		}
	}
	return c
}
