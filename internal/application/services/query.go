package services

import (
	"context"

	"github.com/payflow-labs/transfer-service/internal/application"
	"github.com/payflow-labs/transfer-service/internal/domain"
)

// TransactionReader is the read side of the transaction log store. The
// transfer pipeline itself only ever appends; reads exist for the API
// surface and the reconciliation worker.
type TransactionReader interface {
	FindByID(ctx context.Context, id string) (*domain.TransactionLog, error)
	List(ctx context.Context, limit, offset int) ([]*domain.TransactionLog, error)
}

// QueryService serves read-only lookups of accounts and transaction logs.
// Reads go straight to the stores, outside any transfer unit of work.
type QueryService struct {
	registry     domain.AccountRegistry
	transactions TransactionReader
}

func NewQueryService(registry domain.AccountRegistry, transactions TransactionReader) *QueryService {
	return &QueryService{
		registry:     registry,
		transactions: transactions,
	}
}

func (s *QueryService) GetAccount(ctx context.Context, number string) (*domain.Account, error) {
	account, err := s.registry.LoadByNumber(ctx, number)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if account == nil {
		return nil, domain.NewAccountNotFoundError(number)
	}
	return account, nil
}

func (s *QueryService) GetTransaction(ctx context.Context, id string) (*domain.TransactionLog, error) {
	log, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if log == nil {
		return nil, domain.NewTransactionNotFoundError(id)
	}
	return log, nil
}

func (s *QueryService) ListTransactions(ctx context.Context, limit, offset int) ([]*domain.TransactionLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	logs, err := s.transactions.List(ctx, limit, offset)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return logs, nil
}
