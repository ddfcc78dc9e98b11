package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business rule violation
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// The closed set of failure kinds a transfer can produce. Callers branch on
// these codes, never on message text.
const (
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	ErrCodeCurrencyMismatch   = "CURRENCY_MISMATCH"
	ErrCodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	ErrCodeTransferBusy       = "TRANSFER_BUSY"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"

	// Read-path only, never produced by a transfer.
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
)

// Transfer roles used by currency-mismatch errors.
const (
	RoleClient   = "client"
	RoleMerchant = "merchant"
)

func NewInvalidAmountError(amount int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %d: must be strictly positive", amount),
	}
}

func NewAccountNotFoundError(number string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAccountNotFound,
		Message: fmt.Sprintf("account %s does not exist", number),
	}
}

func NewTransactionNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeTransactionNotFound,
		Message: fmt.Sprintf("transaction %s does not exist", id),
	}
}

func NewCurrencyMismatchError(role, accountCurrency, commandCurrency string) *DomainError {
	return &DomainError{
		Code:    ErrCodeCurrencyMismatch,
		Message: fmt.Sprintf("%s account holds %s, transfer is in %s", role, accountCurrency, commandCurrency),
	}
}

func NewInsufficientFundsError(number string, requested, available int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeInsufficientFunds,
		Message: fmt.Sprintf("account %s has insufficient funds: requested %d, available %d", number, requested, available),
	}
}

func NewTransferBusyError(number string) *DomainError {
	return &DomainError{
		Code:    ErrCodeTransferBusy,
		Message: fmt.Sprintf("account %s is locked by another transfer", number),
	}
}

func NewPersistenceFailureError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodePersistenceFailure,
		Message: "failed to persist transaction log",
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
