package application

import (
	"context"

	"github.com/payflow-labs/transfer-service/internal/domain"
)

// TransferStore exposes the collaborators a transfer may touch while its
// unit of work is open. Loads and saves issued through it observe the
// transaction (or in-memory lock scope) the unit of work opened.
type TransferStore interface {
	Accounts() domain.AccountRegistry
	Transactions() domain.TransactionRepository
}

// UnitOfWork brackets the mutation phase of a transfer. WithinTransfer
// acquires exclusive access to both named accounts before fn runs and
// releases it after fn returns. Implementations must acquire per-account
// locks in lexical order of account number regardless of which number is
// the client, so opposite-direction transfers cannot deadlock. If fn
// returns an error, nothing fn wrote through the store is kept.
type UnitOfWork interface {
	WithinTransfer(ctx context.Context, clientNumber, merchantNumber string, fn func(store TransferStore) error) error
}
