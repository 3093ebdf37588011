package handler

import (
	"context"
	"net/http"

	"github.com/tradebooks/tradebooks/internal/adapter/http/dto"
	"github.com/tradebooks/tradebooks/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	Reconcile(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// ReconciliationHandler handles reconciliation HTTP requests.
type ReconciliationHandler struct {
	reconcileUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconcileUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconcileUC: reconcileUC}
}

// Get compares every account's live balance against a fresh replay.
func (h *ReconciliationHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconcileUC.Reconcile(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(report))
}
