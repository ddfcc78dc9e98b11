package domain_test

import (
	"testing"

	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_Debit(t *testing.T) {
	t.Run("subtracts from the balance", func(t *testing.T) {
		account := domain.NewAccount("client-account", domain.NewAmount(2000, "EUR"))

		err := account.Debit(1000)

		require.NoError(t, err)
		assert.Equal(t, int64(1000), account.Balance.Value)
	})

	t.Run("fails with INSUFFICIENT_FUNDS when balance cannot cover the amount", func(t *testing.T) {
		account := domain.NewAccount("client-account", domain.NewAmount(2000, "EUR"))

		err := account.Debit(3000)

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInsufficientFunds))
		assert.Contains(t, err.Error(), "client-account")
		assert.Contains(t, err.Error(), "requested 3000")
		assert.Contains(t, err.Error(), "available 2000")
		assert.Equal(t, int64(2000), account.Balance.Value)
	})

	t.Run("allows debiting the whole balance", func(t *testing.T) {
		account := domain.NewAccount("client-account", domain.NewAmount(2000, "EUR"))

		err := account.Debit(2000)

		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance.Value)
	})
}

func TestAccount_Credit(t *testing.T) {
	account := domain.NewAccount("merchant-account", domain.NewAmount(500, "EUR"))

	account.Credit(1000)

	assert.Equal(t, int64(1500), account.Balance.Value)
	assert.Equal(t, "EUR", account.Currency())
}
