package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/payflow-labs/transfer-service/internal/infrastructure/persistence"
)

// TransactionRepository is the append-only store for transaction logs.
// Rows are never updated or deleted.
type TransactionRepository struct {
	q persistence.Executor
}

func NewTransactionRepository(db *persistence.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

func (r *TransactionRepository) Add(ctx context.Context, log *domain.TransactionLog) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO transaction_logs (id, occurred_at) VALUES ($1, $2)`,
		log.ID, log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert transaction log %s: %w", log.ID, err)
	}

	for i, entry := range log.Entries {
		_, err := r.q.Exec(ctx,
			`INSERT INTO accounting_entries
			    (transaction_id, position, account_number, amount_cents, currency, new_balance_cents)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			log.ID, int16(i), entry.AccountNumber, entry.Amount.Value, entry.Amount.Currency, entry.NewBalance.Value,
		)
		if err != nil {
			return fmt.Errorf("insert accounting entry %d of transaction %s: %w", i, log.ID, err)
		}
	}
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*domain.TransactionLog, error) {
	var row transactionRow
	err := r.q.QueryRow(ctx,
		`SELECT id, occurred_at FROM transaction_logs WHERE id = $1`,
		id,
	).Scan(&row.ID, &row.OccurredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load transaction log %s: %w", id, err)
	}

	entries, err := r.loadEntries(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	return row.toDomain(entries), nil
}

// List returns logs ordered newest first.
func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.TransactionLog, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, occurred_at FROM transaction_logs ORDER BY occurred_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list transaction logs: %w", err)
	}
	defer rows.Close()

	var heads []transactionRow
	for rows.Next() {
		var row transactionRow
		if err := rows.Scan(&row.ID, &row.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan transaction log: %w", err)
		}
		heads = append(heads, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transaction logs: %w", err)
	}

	logs := make([]*domain.TransactionLog, 0, len(heads))
	for _, head := range heads {
		entries, err := r.loadEntries(ctx, head.ID)
		if err != nil {
			return nil, err
		}
		logs = append(logs, head.toDomain(entries))
	}
	return logs, nil
}

func (r *TransactionRepository) loadEntries(ctx context.Context, transactionID string) ([]domain.AccountingEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT account_number, amount_cents, currency, new_balance_cents
		 FROM accounting_entries WHERE transaction_id = $1 ORDER BY position`,
		transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load entries of transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	var entries []domain.AccountingEntry
	for rows.Next() {
		var row entryRow
		if err := rows.Scan(&row.AccountNumber, &row.AmountCents, &row.Currency, &row.NewBalanceCents); err != nil {
			return nil, fmt.Errorf("scan accounting entry: %w", err)
		}
		entries = append(entries, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load entries of transaction %s: %w", transactionID, err)
	}
	return entries, nil
}
