package domain_test

import (
	"testing"

	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_Add(t *testing.T) {
	t.Run("increases value in place", func(t *testing.T) {
		amount := domain.NewAmount(500, "EUR")

		amount.Add(1000)

		assert.Equal(t, int64(1500), amount.Value)
		assert.Equal(t, "EUR", amount.Currency)
	})

	t.Run("adding zero is a no-op", func(t *testing.T) {
		amount := domain.NewAmount(500, "EUR")

		amount.Add(0)

		assert.Equal(t, int64(500), amount.Value)
	})
}

func TestAmount_Subtract(t *testing.T) {
	t.Run("decreases value in place", func(t *testing.T) {
		amount := domain.NewAmount(2000, "EUR")

		err := amount.Subtract(1000)

		require.NoError(t, err)
		assert.Equal(t, int64(1000), amount.Value)
	})

	t.Run("allows draining to exactly zero", func(t *testing.T) {
		amount := domain.NewAmount(2000, "EUR")

		err := amount.Subtract(2000)

		require.NoError(t, err)
		assert.Equal(t, int64(0), amount.Value)
	})

	t.Run("rejects going negative and leaves value untouched", func(t *testing.T) {
		amount := domain.NewAmount(2000, "EUR")

		err := amount.Subtract(3000)

		assert.Error(t, err)
		assert.Equal(t, int64(2000), amount.Value)
	})
}

func TestAmount_String(t *testing.T) {
	amount := domain.NewAmount(-1000, "EUR")
	assert.Equal(t, "-1000 EUR", amount.String())
}
