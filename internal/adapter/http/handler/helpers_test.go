package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/tradebooks/tradebooks/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrLedgerNotFound, http.StatusNotFound},
		{domain.ErrCustomerNotFound, http.StatusNotFound},
		{domain.ErrVendorNotFound, http.StatusNotFound},
		{domain.ErrVoucherNotFound, http.StatusNotFound},
		{domain.ErrInvalidVoucher, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrUnknownVoucherType, http.StatusBadRequest},
		{domain.ErrVoucherInactive, http.StatusConflict},
		{domain.ErrDuplicateVoucher, http.StatusConflict},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.status {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.status)
		}
	}
}

func TestMapDomainErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("primary ledger ldg_cash: %w", domain.ErrLedgerNotFound)
	if got := mapDomainError(wrapped); got != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped not-found error, got %d", got)
	}
}
