package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/tradebooks/tradebooks/internal/adapter/http/dto"
	"github.com/tradebooks/tradebooks/internal/domain"
)

// BalanceSheetService defines the behavior needed by BalanceSheetHandler.
type BalanceSheetService interface {
	GetBalanceSheet(ctx context.Context, asOf *time.Time) (*domain.BalanceSheet, error)
}

// BalanceSheetHandler handles balance sheet HTTP requests.
type BalanceSheetHandler struct {
	sheetUC BalanceSheetService
}

// NewBalanceSheetHandler creates a new BalanceSheetHandler.
func NewBalanceSheetHandler(sheetUC BalanceSheetService) *BalanceSheetHandler {
	return &BalanceSheetHandler{sheetUC: sheetUC}
}

// Get produces the balance sheet as of the optional as_of date
// (YYYY-MM-DD). The cutoff is inclusive of the whole day.
func (h *BalanceSheetHandler) Get(w http.ResponseWriter, r *http.Request) {
	var asOf *time.Time
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid as_of date", "expected YYYY-MM-DD")
			return
		}
		asOf = &parsed
	}

	sheet, err := h.sheetUC.GetBalanceSheet(r.Context(), asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build balance sheet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(sheet))
}
