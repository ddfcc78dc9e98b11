// Package worker runs background maintenance loops for the transfer
// service.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/payflow-labs/transfer-service/internal/application/services"
)

// Reconciler periodically audits recent transaction logs for the
// conservation-of-funds invariant: every log's entries must sum to zero in
// a single currency. A violation means the store was tampered with or a
// write bug slipped through; the reconciler reports, it never repairs.
type Reconciler struct {
	transactions services.TransactionReader
	interval     time.Duration
	batchSize    int
	logger       *slog.Logger
}

func NewReconciler(transactions services.TransactionReader, interval time.Duration, batchSize int, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		transactions: transactions,
		interval:     interval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Start blocks until ctx is cancelled, auditing once per interval.
func (r *Reconciler) Start(ctx context.Context) {
	r.logger.Info("reconciler started", "interval", r.interval, "batch_size", r.batchSize)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			if _, err := r.AuditRecent(ctx); err != nil {
				r.logger.Error("reconciliation pass failed", "error", err)
			}
		}
	}
}

// AuditRecent checks the newest batch of logs and returns how many violate
// the zero-sum invariant.
func (r *Reconciler) AuditRecent(ctx context.Context) (int, error) {
	logs, err := r.transactions.List(ctx, r.batchSize, 0)
	if err != nil {
		return 0, err
	}

	violations := 0
	for _, log := range logs {
		if !log.IsBalanced() {
			violations++
			r.logger.Error("unbalanced transaction log detected",
				"transaction_id", log.ID,
				"occurred_at", log.Timestamp,
				"entries", len(log.Entries),
			)
		}
	}

	if violations == 0 {
		r.logger.Debug("reconciliation pass clean", "checked", len(logs))
	}
	return violations, nil
}
