// Package rest holds the shared HTTP response plumbing for the transfer
// API: the response envelope and the error-to-status mapping.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/payflow-labs/transfer-service/internal/application"
	"github.com/payflow-labs/transfer-service/internal/domain"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError maps domain and application errors to HTTP responses.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode, detail := buildErrorDetail(err)

	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed", "code", detail.Code, "error", err)
		// Internals stay out of the response body.
		detail.Message = "An internal error occurred"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: detail})
}

func buildErrorDetail(err error) (int, ErrorDetail) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainStatus(domainErr.Code), ErrorDetail{Code: domainErr.Code, Message: domainErr.Message}
	}

	if svcErr, ok := application.IsServiceError(err); ok {
		return svcErr.HTTPStatus, ErrorDetail{Code: svcErr.Code, Message: svcErr.Message}
	}

	return http.StatusInternalServerError, ErrorDetail{Code: application.ErrCodeInternal, Message: err.Error()}
}

func domainStatus(code string) int {
	switch code {
	case domain.ErrCodeInvalidAmount, domain.ErrCodeCurrencyMismatch:
		return http.StatusBadRequest
	case domain.ErrCodeAccountNotFound, domain.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domain.ErrCodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case domain.ErrCodeTransferBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
