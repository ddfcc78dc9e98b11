package display_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/payflow-labs/transfer-service/internal/display"
	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestConsole_Render(t *testing.T) {
	var buf bytes.Buffer
	console := display.NewConsole(&buf)

	log := &domain.TransactionLog{
		ID:        "7e5a2f1c",
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Entries: []domain.AccountingEntry{
			{
				AccountNumber: "client-account",
				Amount:        domain.NewAmount(-1000, "EUR"),
				NewBalance:    domain.NewAmount(1000, "EUR"),
			},
			{
				AccountNumber: "merchant-account",
				Amount:        domain.NewAmount(1000, "EUR"),
				NewBalance:    domain.NewAmount(1500, "EUR"),
			},
		},
	}

	console.Render(log)

	out := buf.String()
	assert.Contains(t, out, "Transaction ID: 7e5a2f1c")
	assert.Contains(t, out, "Date: 2026-03-14 09:26:53")
	assert.Contains(t, out, "Account Number: client-account")
	assert.Contains(t, out, "Amount: -1000 EUR")
	assert.Contains(t, out, "New Balance: 1000 EUR")
	assert.Contains(t, out, "Account Number: merchant-account")
	assert.Contains(t, out, "Amount: 1000 EUR")
	assert.Contains(t, out, "New Balance: 1500 EUR")
	assert.Contains(t, out, "-----------------------------")
}
