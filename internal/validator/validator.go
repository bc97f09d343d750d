package validator

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/blackcloro/transaction-validator/internal"
	"github.com/blackcloro/transaction-validator/internal/domain/account"
	"github.com/blackcloro/transaction-validator/internal/domain/transaction"
)

// TransactionValidator owns the account directory and routes transactions to
// the right account. The directory is a concurrent map: creation is an atomic
// insert-if-absent and lookups are lock-free, so traffic on one account never
// serializes traffic on another. Accounts are inserted once and never removed.
type TransactionValidator struct {
	accounts     sync.Map // account id -> *account.Account
	accountCount atomic.Int64
}

func New() *TransactionValidator {
	return &TransactionValidator{}
}

// CreateAccount provisions a new account. The id must be unused and the
// initial balance non-negative; a losing racer on the same id gets
// ErrDuplicateAccount.
func (v *TransactionValidator) CreateAccount(id string, initialBalance decimal.Decimal) (*account.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, internal.ErrBlankAccountID
	}
	if initialBalance.IsNegative() {
		return nil, internal.ErrNegativeInitialBalance
	}
	acc := account.New(id, initialBalance)
	if _, loaded := v.accounts.LoadOrStore(id, acc); loaded {
		return nil, internal.ErrDuplicateAccount
	}
	v.accountCount.Add(1)
	return acc, nil
}

// GetAccount looks up an account without blocking.
func (v *TransactionValidator) GetAccount(id string) (*account.Account, bool) {
	val, ok := v.accounts.Load(id)
	if !ok {
		return nil, false
	}
	return val.(*account.Account), true
}

func (v *TransactionValidator) AccountCount() int64 {
	return v.accountCount.Load()
}

// Range calls fn for each account until fn returns false. Iteration order is
// unspecified and the snapshot is not atomic across accounts.
func (v *TransactionValidator) Range(fn func(*account.Account) bool) {
	v.accounts.Range(func(_, val any) bool {
		return fn(val.(*account.Account))
	})
}

// Process admits a transaction and returns one of the closed result variants;
// it never panics for a business outcome. The id is marked processed before
// the balance operation runs, and the mark is kept even when that operation
// fails: resubmitting an id whose first admission was rejected for
// insufficient funds reports DuplicateTransaction rather than retrying. That
// is the intended anti-replay stance, not an oversight.
func (v *TransactionValidator) Process(tx *transaction.Transaction) ValidationResult {
	if tx == nil {
		return InvalidInput{Reason: internal.ErrMissingTransaction}
	}
	if err := tx.Validate(); err != nil {
		return InvalidInput{Reason: err}
	}

	acc, ok := v.GetAccount(tx.AccountID)
	if !ok {
		return InvalidInput{Reason: internal.ErrAccountNotFound}
	}

	if !acc.MarkProcessed(tx.ID) {
		return DuplicateTransaction{TransactionID: tx.ID}
	}

	switch tx.Kind {
	case transaction.KindDeposit:
		acc.Deposit(tx.Amount)
		return Success{NewBalance: acc.Balance()}
	case transaction.KindWithdrawal, transaction.KindTransfer:
		if acc.Withdraw(tx.Amount) {
			return Success{NewBalance: acc.Balance()}
		}
		current := acc.Balance()
		return InsufficientFunds{
			CurrentBalance:  current,
			RequestedAmount: tx.Amount,
			Shortfall:       tx.Amount.Sub(current),
		}
	default:
		// Unreachable through New/Validate; kept for direct struct literals.
		return InvalidInput{Reason: internal.ErrInvalidTransactionKind}
	}
}
