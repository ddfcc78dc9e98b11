package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/payflow-labs/transfer-service/internal/infrastructure/memory"
	"github.com/payflow-labs/transfer-service/internal/worker"
)

type failingReader struct{}

func (f *failingReader) FindByID(ctx context.Context, id string) (*domain.TransactionLog, error) {
	return nil, errors.New("store down")
}

func (f *failingReader) List(ctx context.Context, limit, offset int) ([]*domain.TransactionLog, error) {
	return nil, errors.New("store down")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuditRecent_CleanStore(t *testing.T) {
	store := memory.NewStore(time.Second)

	debit := domain.AccountingEntry{
		AccountNumber: "client-account",
		Amount:        domain.NewAmount(-1000, "EUR"),
		NewBalance:    domain.NewAmount(1000, "EUR"),
	}
	credit := domain.AccountingEntry{
		AccountNumber: "merchant-account",
		Amount:        domain.NewAmount(1000, "EUR"),
		NewBalance:    domain.NewAmount(1500, "EUR"),
	}
	require.NoError(t, store.Add(context.Background(), domain.NewTransactionLog(debit, credit)))

	r := worker.NewReconciler(store, time.Minute, 100, discardLogger())

	violations, err := r.AuditRecent(context.Background())
	require.NoError(t, err)
	assert.Zero(t, violations)
}

func TestAuditRecent_DetectsUnbalancedLog(t *testing.T) {
	store := memory.NewStore(time.Second)

	corrupt := &domain.TransactionLog{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Entries: []domain.AccountingEntry{
			{
				AccountNumber: "client-account",
				Amount:        domain.NewAmount(-1000, "EUR"),
				NewBalance:    domain.NewAmount(1000, "EUR"),
			},
			{
				AccountNumber: "merchant-account",
				Amount:        domain.NewAmount(900, "EUR"),
				NewBalance:    domain.NewAmount(1400, "EUR"),
			},
		},
	}
	require.NoError(t, store.Add(context.Background(), corrupt))

	r := worker.NewReconciler(store, time.Minute, 100, discardLogger())

	violations, err := r.AuditRecent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, violations)
}

func TestAuditRecent_ReaderFailure(t *testing.T) {
	r := worker.NewReconciler(&failingReader{}, time.Minute, 100, discardLogger())

	_, err := r.AuditRecent(context.Background())
	assert.Error(t, err)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	store := memory.NewStore(time.Second)
	r := worker.NewReconciler(store, time.Millisecond, 100, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop after cancel")
	}
}
