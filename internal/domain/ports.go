package domain

import "context"

// AccountRegistry loads and persists accounts. LoadByNumber returns
// (nil, nil) when no account exists under the given number; it never
// invents a typed not-found error, that decision belongs to the caller.
type AccountRegistry interface {
	LoadByNumber(ctx context.Context, number string) (*Account, error)
	Save(ctx context.Context, account *Account) error
}

// TransactionRepository is the append-only store for transaction logs.
// Add failures propagate upward untouched; the core never retries them.
type TransactionRepository interface {
	Add(ctx context.Context, log *TransactionLog) error
}

// TransactionDisplay renders a completed transfer somewhere observable.
// Rendering is a side effect only and must not affect the transfer outcome.
type TransactionDisplay interface {
	Render(log *TransactionLog)
}
