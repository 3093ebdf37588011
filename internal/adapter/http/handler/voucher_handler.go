package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tradebooks/tradebooks/internal/adapter/http/dto"
	"github.com/tradebooks/tradebooks/internal/domain"
	"github.com/tradebooks/tradebooks/internal/usecase"
)

// VoucherService defines the behavior needed by VoucherHandler.
type VoucherService interface {
	PostVoucher(ctx context.Context, voucher *domain.Voucher) (*usecase.PostingReport, error)
	ReverseVoucher(ctx context.Context, number int64) (*usecase.PostingReport, error)
}

// VoucherHandler handles voucher-related HTTP requests.
type VoucherHandler struct {
	postingUC VoucherService
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(postingUC VoucherService) *VoucherHandler {
	return &VoucherHandler{postingUC: postingUC}
}

// Post validates and posts a voucher, returning the per-account outcome.
func (h *VoucherHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	report, err := h.postingUC.PostVoucher(r.Context(), req.ToDomain())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post voucher", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostingReportFromUseCase(report))
}

// Reverse soft-deletes a voucher and backs its effect out of live balances.
func (h *VoucherHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid voucher number", err.Error())
		return
	}

	report, err := h.postingUC.ReverseVoucher(r.Context(), number)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reverse voucher", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PostingReportFromUseCase(report))
}
