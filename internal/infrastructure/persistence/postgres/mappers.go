package postgres

import "github.com/payflow-labs/transfer-service/internal/domain"

func (r accountRow) toDomain() *domain.Account {
	return domain.NewAccount(r.Number, domain.NewAmount(r.BalanceCents, r.Currency))
}

func (r entryRow) toDomain() domain.AccountingEntry {
	return domain.AccountingEntry{
		AccountNumber: r.AccountNumber,
		Amount:        domain.NewAmount(r.AmountCents, r.Currency),
		NewBalance:    domain.NewAmount(r.NewBalanceCents, r.Currency),
	}
}

func (r transactionRow) toDomain(entries []domain.AccountingEntry) *domain.TransactionLog {
	return &domain.TransactionLog{
		ID:        r.ID,
		Timestamp: r.OccurredAt,
		Entries:   entries,
	}
}
