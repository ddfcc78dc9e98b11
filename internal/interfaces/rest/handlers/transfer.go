package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/payflow-labs/transfer-service/internal/application"
	"github.com/payflow-labs/transfer-service/internal/application/services"
	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/payflow-labs/transfer-service/internal/interfaces/rest"
)

// TransferExecutor is the slice of TransferService the handlers need.
type TransferExecutor interface {
	Execute(ctx context.Context, cmd services.PayTransferCommand) (*domain.TransactionLog, error)
}

type TransferRequest struct {
	ClientAccountNumber   string `json:"client_account_number"`
	MerchantAccountNumber string `json:"merchant_account_number"`
	Amount                int64  `json:"amount"`
	Currency              string `json:"currency"`
}

// CreateTransfer handles POST /api/v1/transfers.
func (h *Handlers) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}
	if req.ClientAccountNumber == "" || req.MerchantAccountNumber == "" || req.Currency == "" {
		rest.WriteError(w, application.NewInvalidInputError(errors.New("client_account_number, merchant_account_number and currency are required")), h.logger)
		return
	}

	cmd := services.PayTransferCommand{
		ClientAccountNumber:   req.ClientAccountNumber,
		MerchantAccountNumber: req.MerchantAccountNumber,
		Amount:                req.Amount,
		Currency:              req.Currency,
	}

	log, err := h.transferService.Execute(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionLogResponse(log))
}
