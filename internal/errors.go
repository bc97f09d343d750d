package internal

import "errors"

var (
	ErrMissingTransaction     = errors.New("missing transaction")
	ErrBlankTransactionID     = errors.New("blank transaction id")
	ErrBlankAccountID         = errors.New("blank account id")
	ErrNonPositiveAmount      = errors.New("amount must be positive")
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
	ErrAccountNotFound        = errors.New("account not found")
	ErrDuplicateAccount       = errors.New("duplicate account")
	ErrNegativeInitialBalance = errors.New("negative initial balance")
)
