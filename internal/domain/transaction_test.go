package domain_test

import (
	"testing"

	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionLog(t *testing.T) {
	client := domain.NewAccount("client-account", domain.NewAmount(2000, "EUR"))
	merchant := domain.NewAccount("merchant-account", domain.NewAmount(500, "EUR"))

	require.NoError(t, client.Debit(1000))
	clientEntry := domain.NewDebitEntry(client, 1000)
	merchant.Credit(1000)
	merchantEntry := domain.NewCreditEntry(merchant, 1000)

	log := domain.NewTransactionLog(clientEntry, merchantEntry)

	assert.NotEmpty(t, log.ID)
	assert.False(t, log.Timestamp.IsZero())
	require.Len(t, log.Entries, 2)

	assert.Equal(t, "client-account", log.Entries[0].AccountNumber)
	assert.Equal(t, int64(-1000), log.Entries[0].Amount.Value)
	assert.Equal(t, int64(1000), log.Entries[0].NewBalance.Value)

	assert.Equal(t, "merchant-account", log.Entries[1].AccountNumber)
	assert.Equal(t, int64(1000), log.Entries[1].Amount.Value)
	assert.Equal(t, int64(1500), log.Entries[1].NewBalance.Value)
}

func TestTransactionLog_IDsAreUnique(t *testing.T) {
	client := domain.NewAccount("client-account", domain.NewAmount(2000, "EUR"))
	entry := domain.NewDebitEntry(client, 0)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		log := domain.NewTransactionLog(entry, entry)
		assert.False(t, seen[log.ID], "duplicate transaction id %s", log.ID)
		seen[log.ID] = true
	}
}

func TestTransactionLog_IsBalanced(t *testing.T) {
	t.Run("zero-sum entries in one currency balance", func(t *testing.T) {
		log := &domain.TransactionLog{
			ID: "tx-1",
			Entries: []domain.AccountingEntry{
				{AccountNumber: "a", Amount: domain.NewAmount(-1000, "EUR")},
				{AccountNumber: "b", Amount: domain.NewAmount(1000, "EUR")},
			},
		}
		assert.True(t, log.IsBalanced())
	})

	t.Run("non-zero sum does not balance", func(t *testing.T) {
		log := &domain.TransactionLog{
			ID: "tx-2",
			Entries: []domain.AccountingEntry{
				{AccountNumber: "a", Amount: domain.NewAmount(-1000, "EUR")},
				{AccountNumber: "b", Amount: domain.NewAmount(900, "EUR")},
			},
		}
		assert.False(t, log.IsBalanced())
	})

	t.Run("mixed currencies do not balance", func(t *testing.T) {
		log := &domain.TransactionLog{
			ID: "tx-3",
			Entries: []domain.AccountingEntry{
				{AccountNumber: "a", Amount: domain.NewAmount(-1000, "EUR")},
				{AccountNumber: "b", Amount: domain.NewAmount(1000, "USD")},
			},
		}
		assert.False(t, log.IsBalanced())
	})

	t.Run("empty log does not balance", func(t *testing.T) {
		log := &domain.TransactionLog{ID: "tx-4"}
		assert.False(t, log.IsBalanced())
	})
}
