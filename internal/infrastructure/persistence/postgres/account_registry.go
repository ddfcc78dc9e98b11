// Package postgres implements the account registry, the transaction log
// store and the transfer unit of work on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/payflow-labs/transfer-service/internal/infrastructure/persistence"
)

// AccountRegistry loads and persists accounts. When its executor is a
// transaction opened by the unit of work, reads observe the row locks that
// transaction already holds.
type AccountRegistry struct {
	q persistence.Executor
}

func NewAccountRegistry(db *persistence.DB) *AccountRegistry {
	return &AccountRegistry{q: db.Pool}
}

func (r *AccountRegistry) LoadByNumber(ctx context.Context, number string) (*domain.Account, error) {
	var row accountRow
	err := r.q.QueryRow(ctx,
		`SELECT number, balance_cents, currency FROM accounts WHERE number = $1`,
		number,
	).Scan(&row.Number, &row.BalanceCents, &row.Currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load account %s: %w", number, err)
	}
	return row.toDomain(), nil
}

func (r *AccountRegistry) Save(ctx context.Context, account *domain.Account) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE accounts SET balance_cents = $2, updated_at = now() WHERE number = $1`,
		account.Number, account.Balance.Value,
	)
	if err != nil {
		return fmt.Errorf("save account %s: %w", account.Number, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save account %s: no such row", account.Number)
	}
	return nil
}

// Create inserts a new account. Used by seeds and tests, not by transfers.
func (r *AccountRegistry) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO accounts (number, balance_cents, currency) VALUES ($1, $2, $3)`,
		account.Number, account.Balance.Value, account.Currency(),
	)
	if err != nil {
		if persistence.IsUniqueViolation(err) {
			return fmt.Errorf("account %s already exists: %w", account.Number, err)
		}
		return fmt.Errorf("create account %s: %w", account.Number, err)
	}
	return nil
}
