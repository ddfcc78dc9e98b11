// Package handlers translates HTTP requests into service calls and
// service results into JSON responses.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/payflow-labs/transfer-service/internal/domain"
)

type Handlers struct {
	transferService TransferExecutor
	queryService    QueryExecutor
	logger          *slog.Logger
}

func NewHandlers(transferService TransferExecutor, queryService QueryExecutor, logger *slog.Logger) *Handlers {
	return &Handlers{
		transferService: transferService,
		queryService:    queryService,
		logger:          logger,
	}
}

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(SuccessResponse{Success: true, Data: data})
}

// Wire representations of the domain model.

type TransactionLogResponse struct {
	ID        string                    `json:"id"`
	Timestamp time.Time                 `json:"timestamp"`
	Entries   []AccountingEntryResponse `json:"entries"`
}

type AccountingEntryResponse struct {
	AccountNumber   string `json:"account_number"`
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
	NewBalanceCents int64  `json:"new_balance_cents"`
}

type AccountResponse struct {
	Number       string `json:"number"`
	BalanceCents int64  `json:"balance_cents"`
	Currency     string `json:"currency"`
}

func toTransactionLogResponse(log *domain.TransactionLog) TransactionLogResponse {
	entries := make([]AccountingEntryResponse, 0, len(log.Entries))
	for _, e := range log.Entries {
		entries = append(entries, AccountingEntryResponse{
			AccountNumber:   e.AccountNumber,
			AmountCents:     e.Amount.Value,
			Currency:        e.Amount.Currency,
			NewBalanceCents: e.NewBalance.Value,
		})
	}
	return TransactionLogResponse{
		ID:        log.ID,
		Timestamp: log.Timestamp,
		Entries:   entries,
	}
}

func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		Number:       account.Number,
		BalanceCents: account.Balance.Value,
		Currency:     account.Currency(),
	}
}
