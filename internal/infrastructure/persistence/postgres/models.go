package postgres

import "time"

type accountRow struct {
	Number       string
	BalanceCents int64
	Currency     string
}

type entryRow struct {
	TransactionID   string
	Position        int16
	AccountNumber   string
	AmountCents     int64
	Currency        string
	NewBalanceCents int64
}

type transactionRow struct {
	ID         string
	OccurredAt time.Time
}
