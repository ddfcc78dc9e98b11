package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountingEntry is one leg of a transaction: the signed amount applied
// to an account and the balance that resulted. Debit legs carry a
// negative amount, credit legs a positive one.
type AccountingEntry struct {
	AccountNumber string
	Amount        Amount
	NewBalance    Amount
}

// NewDebitEntry snapshots the debit leg for an account that has already
// been debited; NewBalance captures the post-debit balance.
func NewDebitEntry(account *Account, amount int64) AccountingEntry {
	return AccountingEntry{
		AccountNumber: account.Number,
		Amount:        NewAmount(-amount, account.Currency()),
		NewBalance:    account.Balance,
	}
}

// NewCreditEntry snapshots the credit leg for an account that has
// already been credited.
func NewCreditEntry(account *Account, amount int64) AccountingEntry {
	return AccountingEntry{
		AccountNumber: account.Number,
		Amount:        NewAmount(amount, account.Currency()),
		NewBalance:    account.Balance,
	}
}

// TransactionLog is the immutable double-entry record of one transfer.
// Entries are ordered: the client's debit leg first, the merchant's
// credit leg second.
type TransactionLog struct {
	ID        string
	Timestamp time.Time
	Entries   []AccountingEntry
}

func NewTransactionLog(clientEntry, merchantEntry AccountingEntry) *TransactionLog {
	return &TransactionLog{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Entries:   []AccountingEntry{clientEntry, merchantEntry},
	}
}

// IsBalanced reports whether the entries sum to zero in a single
// currency. An empty log is not balanced; money moved without a record
// of both legs.
func (t *TransactionLog) IsBalanced() bool {
	if len(t.Entries) == 0 {
		return false
	}

	currency := t.Entries[0].Amount.Currency
	var sum int64
	for _, entry := range t.Entries {
		if entry.Amount.Currency != currency {
			return false
		}
		sum += entry.Amount.Value
	}
	return sum == 0
}
