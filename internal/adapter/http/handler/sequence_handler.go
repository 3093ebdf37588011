package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradebooks/tradebooks/internal/adapter/http/dto"
)

// SequenceService defines the behavior needed by SequenceHandler.
type SequenceService interface {
	Next(ctx context.Context, name string) (int64, error)
	Peek(ctx context.Context, name string) (int64, error)
}

// SequenceHandler handles sequence counter HTTP requests.
type SequenceHandler struct {
	sequenceUC SequenceService
}

// NewSequenceHandler creates a new SequenceHandler.
func NewSequenceHandler(sequenceUC SequenceService) *SequenceHandler {
	return &SequenceHandler{sequenceUC: sequenceUC}
}

// Next allocates and returns the next value of a named counter.
func (h *SequenceHandler) Next(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing sequence name", "")
		return
	}

	value, err := h.sequenceUC.Next(r.Context(), name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to allocate sequence value", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SequenceResponse{Name: name, Value: value})
}

// Peek returns the value Next would hand out, without reserving it.
func (h *SequenceHandler) Peek(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing sequence name", "")
		return
	}

	value, err := h.sequenceUC.Peek(r.Context(), name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to read sequence", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SequenceResponse{Name: name, Value: value})
}
