package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/payflow-labs/transfer-service/internal/interfaces/rest"
)

// QueryExecutor is the slice of QueryService the handlers need.
type QueryExecutor interface {
	GetAccount(ctx context.Context, number string) (*domain.Account, error)
	GetTransaction(ctx context.Context, id string) (*domain.TransactionLog, error)
	ListTransactions(ctx context.Context, limit, offset int) ([]*domain.TransactionLog, error)
}

// GetAccount handles GET /api/v1/accounts/{number}.
func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	account, err := h.queryService.GetAccount(r.Context(), number)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

// GetTransaction handles GET /api/v1/transactions/{id}.
func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	log, err := h.queryService.GetTransaction(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionLogResponse(log))
}

// ListTransactions handles GET /api/v1/transactions.
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	logs, err := h.queryService.ListTransactions(r.Context(), limit, offset)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	responses := make([]TransactionLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, toTransactionLogResponse(log))
	}
	writeJSON(w, http.StatusOK, responses)
}
