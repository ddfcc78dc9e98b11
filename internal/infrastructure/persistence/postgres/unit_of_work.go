package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/payflow-labs/transfer-service/internal/application"
	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/payflow-labs/transfer-service/internal/infrastructure/persistence"
)

// UnitOfWork runs a transfer inside one database transaction. Both account
// rows are locked up front with SELECT ... FOR UPDATE in lexical order of
// account number, so two opposite-direction transfers over the same pair
// cannot deadlock. The debit, the credit and the log append all commit or
// roll back together; the committed log row is the durable proof that the
// transfer completed.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(db *persistence.DB) *UnitOfWork {
	return &UnitOfWork{pool: db.Pool}
}

func (u *UnitOfWork) WithinTransfer(ctx context.Context, clientNumber, merchantNumber string, fn func(store application.TransferStore) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Missing accounts produce no lock here; fn observes them as absent.
	numbers := lockOrder(clientNumber, merchantNumber)
	rows, err := tx.Query(ctx,
		`SELECT number FROM accounts WHERE number = ANY($1) ORDER BY number FOR UPDATE`,
		numbers,
	)
	if err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}

	store := &txStore{
		accounts:     &AccountRegistry{q: tx},
		transactions: &TransactionRepository{q: tx},
	}

	if err := fn(store); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.NewPersistenceFailureError(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

type txStore struct {
	accounts     *AccountRegistry
	transactions *TransactionRepository
}

func (s *txStore) Accounts() domain.AccountRegistry {
	return s.accounts
}

func (s *txStore) Transactions() domain.TransactionRepository {
	return s.transactions
}

func lockOrder(a, b string) []string {
	if a == b {
		return []string{a}
	}
	numbers := []string{a, b}
	sort.Strings(numbers)
	return numbers
}
