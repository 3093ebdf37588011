package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tradebooks/tradebooks/internal/adapter/http/dto"
	"github.com/tradebooks/tradebooks/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrLedgerNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrVendorNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrVoucherNotFound),
		errors.Is(err, domain.ErrGroupNotFound),
		errors.Is(err, domain.ErrSequenceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidVoucher),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownVoucherType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrVoucherInactive),
		errors.Is(err, domain.ErrDuplicateVoucher):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
