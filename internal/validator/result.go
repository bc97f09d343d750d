package validator

import "github.com/shopspring/decimal"

// ValidationResult is the closed set of outcomes a Process call can produce.
// The unexported marker keeps the set closed to this package, so a type
// switch over Success, InsufficientFunds, DuplicateTransaction and
// InvalidInput covers every case.
type ValidationResult interface {
	validationResult()
}

// Success reports the balance after the amount was applied.
type Success struct {
	NewBalance decimal.Decimal
}

// InsufficientFunds rejects a withdrawal or transfer the balance cannot
// cover. Shortfall is RequestedAmount minus CurrentBalance.
type InsufficientFunds struct {
	CurrentBalance  decimal.Decimal
	RequestedAmount decimal.Decimal
	Shortfall       decimal.Decimal
}

// DuplicateTransaction reports an id that was already admitted against the
// target account, whether or not that first admission succeeded.
type DuplicateTransaction struct {
	TransactionID string
}

// InvalidInput reports a structural problem: a missing transaction, an
// unknown account, or a malformed field.
type InvalidInput struct {
	Reason error
}

func (Success) validationResult()              {}
func (InsufficientFunds) validationResult()    {}
func (DuplicateTransaction) validationResult() {}
func (InvalidInput) validationResult()         {}
