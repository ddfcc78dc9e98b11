package services

import (
	"context"
	"sync"

	"github.com/payflow-labs/transfer-service/internal/application"
	"github.com/payflow-labs/transfer-service/internal/domain"
)

// Hand-rolled test doubles, kept in the package so service tests and
// transport tests can share them. Each method delegates to its Fn override
// when set, otherwise falls back to the in-memory default.

// MockAccountRegistry
type MockAccountRegistry struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	LoadByNumberFn func(ctx context.Context, number string) (*domain.Account, error)
	SaveFn         func(ctx context.Context, account *domain.Account) error
}

func NewMockAccountRegistry(accounts ...*domain.Account) *MockAccountRegistry {
	m := &MockAccountRegistry{accounts: make(map[string]*domain.Account)}
	for _, a := range accounts {
		m.accounts[a.Number] = a
	}
	return m
}

func (m *MockAccountRegistry) LoadByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.LoadByNumberFn != nil {
		return m.LoadByNumberFn(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[number]
	if !ok {
		return nil, nil
	}
	return account, nil
}

func (m *MockAccountRegistry) Save(ctx context.Context, account *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.Number] = account
	return nil
}

// MockTransactionRepository
type MockTransactionRepository struct {
	mu   sync.RWMutex
	logs []*domain.TransactionLog

	AddFn      func(ctx context.Context, log *domain.TransactionLog) error
	FindByIDFn func(ctx context.Context, id string) (*domain.TransactionLog, error)
	ListFn     func(ctx context.Context, limit, offset int) ([]*domain.TransactionLog, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Add(ctx context.Context, log *domain.TransactionLog) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*domain.TransactionLog, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (m *MockTransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.TransactionLog, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if offset >= len(m.logs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.logs) {
		end = len(m.logs)
	}
	return m.logs[offset:end], nil
}

func (m *MockTransactionRepository) Logs() []*domain.TransactionLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.TransactionLog, len(m.logs))
	copy(out, m.logs)
	return out
}

// MockUnitOfWork runs fn directly against the wrapped registry and
// repository with no locking and no rollback.
type MockUnitOfWork struct {
	Registry        *MockAccountRegistry
	TransactionRepo *MockTransactionRepository

	WithinTransferFn func(ctx context.Context, clientNumber, merchantNumber string, fn func(store application.TransferStore) error) error
}

func NewMockUnitOfWork(registry *MockAccountRegistry, transactions *MockTransactionRepository) *MockUnitOfWork {
	return &MockUnitOfWork{Registry: registry, TransactionRepo: transactions}
}

func (m *MockUnitOfWork) WithinTransfer(ctx context.Context, clientNumber, merchantNumber string, fn func(store application.TransferStore) error) error {
	if m.WithinTransferFn != nil {
		return m.WithinTransferFn(ctx, clientNumber, merchantNumber, fn)
	}
	return fn(m)
}

func (m *MockUnitOfWork) Accounts() domain.AccountRegistry {
	return m.Registry
}

func (m *MockUnitOfWork) Transactions() domain.TransactionRepository {
	return m.TransactionRepo
}

// MockDisplay records rendered logs.
type MockDisplay struct {
	mu       sync.Mutex
	rendered []*domain.TransactionLog
}

func (m *MockDisplay) Render(log *domain.TransactionLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rendered = append(m.rendered, log)
}

func (m *MockDisplay) Rendered() []*domain.TransactionLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.TransactionLog, len(m.rendered))
	copy(out, m.rendered)
	return out
}

// MockEventPublisher records published logs.
type MockEventPublisher struct {
	mu        sync.Mutex
	published []*domain.TransactionLog

	PublishFn func(ctx context.Context, log *domain.TransactionLog) error
}

func (m *MockEventPublisher) PublishTransferCompleted(ctx context.Context, log *domain.TransactionLog) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, log)
	return nil
}

func (m *MockEventPublisher) Published() []*domain.TransactionLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.TransactionLog, len(m.published))
	copy(out, m.published)
	return out
}
