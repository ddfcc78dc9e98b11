// Package memory provides an in-process implementation of the account
// registry, the transaction log store and the transfer unit of work. It
// backs local development and tests; durability is out of its scope.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/payflow-labs/transfer-service/internal/application"
	"github.com/payflow-labs/transfer-service/internal/domain"
)

const lockRetryInterval = time.Millisecond

// Store keeps accounts and transaction logs in memory. Every account has
// its own lock; a transfer takes the locks of both its accounts in lexical
// number order and gives up with a TRANSFER_BUSY error when one cannot be
// acquired within lockTimeout.
type Store struct {
	mu          sync.RWMutex
	accounts    map[string]*accountState
	logs        []*domain.TransactionLog
	lockTimeout time.Duration
}

type accountState struct {
	mu      sync.Mutex
	account domain.Account
}

func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		accounts:    make(map[string]*accountState),
		lockTimeout: lockTimeout,
	}
}

// Seed registers accounts, replacing any existing state under the same
// numbers.
func (s *Store) Seed(accounts ...*domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range accounts {
		s.accounts[a.Number] = &accountState{account: *a}
	}
}

// LoadByNumber returns a copy of the account, or (nil, nil) when absent.
func (s *Store) LoadByNumber(ctx context.Context, number string) (*domain.Account, error) {
	state := s.lookup(number)
	if state == nil {
		return nil, nil
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	account := state.account
	return &account, nil
}

func (s *Store) Save(ctx context.Context, account *domain.Account) error {
	state := s.lookup(account.Number)
	if state == nil {
		return domain.NewAccountNotFoundError(account.Number)
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	state.account = *account
	return nil
}

func (s *Store) Add(ctx context.Context, log *domain.TransactionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	return nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*domain.TransactionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

// List returns logs newest first, matching the postgres repository.
func (s *Store) List(ctx context.Context, limit, offset int) ([]*domain.TransactionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.TransactionLog
	for i := len(s.logs) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.logs[i])
	}
	return out, nil
}

// WithinTransfer locks both accounts in lexical number order, runs fn
// against a staging view, and applies the staged writes only when fn
// succeeds. Writes of a failed transfer are discarded wholesale, so a
// partial mutation can never become observable.
func (s *Store) WithinTransfer(ctx context.Context, clientNumber, merchantNumber string, fn func(store application.TransferStore) error) error {
	numbers := []string{clientNumber, merchantNumber}
	if clientNumber == merchantNumber {
		numbers = numbers[:1]
	} else if merchantNumber < clientNumber {
		numbers[0], numbers[1] = merchantNumber, clientNumber
	}

	var locked []*accountState
	defer func() {
		for _, state := range locked {
			state.mu.Unlock()
		}
	}()

	for _, number := range numbers {
		state := s.lookup(number)
		if state == nil {
			// Absent accounts cannot be locked; fn observes them as absent.
			continue
		}
		if err := s.acquire(ctx, state, number); err != nil {
			return err
		}
		locked = append(locked, state)
	}

	tx := &txStore{store: s, pending: make(map[string]*domain.Account)}
	if err := fn(tx); err != nil {
		return err
	}

	// Commit under the held locks.
	for _, account := range tx.pending {
		state := s.lookup(account.Number)
		if state == nil {
			return domain.NewAccountNotFoundError(account.Number)
		}
		state.account = *account
	}
	s.mu.Lock()
	s.logs = append(s.logs, tx.added...)
	s.mu.Unlock()
	return nil
}

func (s *Store) acquire(ctx context.Context, state *accountState, number string) error {
	deadline := time.Now().Add(s.lockTimeout)
	for {
		if state.mu.TryLock() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if time.Now().After(deadline) {
			return domain.NewTransferBusyError(number)
		}
		time.Sleep(lockRetryInterval)
	}
}

func (s *Store) lookup(number string) *accountState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts[number]
}

// txStore stages writes of one transfer. Loads come from the stage first
// so a transfer reads its own writes; the store itself stays untouched
// until commit.
type txStore struct {
	store   *Store
	pending map[string]*domain.Account
	added   []*domain.TransactionLog
}

func (t *txStore) Accounts() domain.AccountRegistry {
	return (*txRegistry)(t)
}

func (t *txStore) Transactions() domain.TransactionRepository {
	return (*txRepository)(t)
}

type txRegistry txStore

func (t *txRegistry) LoadByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if account, ok := t.pending[number]; ok {
		return account, nil
	}
	state := t.store.lookup(number)
	if state == nil {
		return nil, nil
	}
	// The caller holds this account's lock for the whole unit of work.
	account := state.account
	return &account, nil
}

func (t *txRegistry) Save(ctx context.Context, account *domain.Account) error {
	if t.store.lookup(account.Number) == nil {
		return domain.NewAccountNotFoundError(account.Number)
	}
	t.pending[account.Number] = account
	return nil
}

type txRepository txStore

func (t *txRepository) Add(ctx context.Context, log *domain.TransactionLog) error {
	t.added = append(t.added, log)
	return nil
}
