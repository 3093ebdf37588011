package usecase

import (
	"context"

	"github.com/tradebooks/tradebooks/internal/infrastructure/metrics"
)

// SequenceUseCase hands out human-readable numbers from named monotonic
// counters.
type SequenceUseCase struct {
	sequenceRepo SequenceRepository
	metrics      *metrics.Metrics
}

// NewSequenceUseCase creates a new SequenceUseCase.
func NewSequenceUseCase(sequenceRepo SequenceRepository, m *metrics.Metrics) *SequenceUseCase {
	return &SequenceUseCase{sequenceRepo: sequenceRepo, metrics: m}
}

// Next atomically increments and returns the counter, creating it at 1 if
// absent. No two callers ever observe the same value.
func (uc *SequenceUseCase) Next(ctx context.Context, name string) (int64, error) {
	value, err := uc.sequenceRepo.Increment(ctx, name)
	if err != nil {
		return 0, err
	}

	if uc.metrics != nil {
		uc.metrics.SequenceAllocations.WithLabelValues(name).Inc()
	}

	return value, nil
}

// Peek returns the value Next would hand out, without reserving it. It may
// race with concurrent Next calls and is display-only by contract.
func (uc *SequenceUseCase) Peek(ctx context.Context, name string) (int64, error) {
	current, err := uc.sequenceRepo.Current(ctx, name)
	if err != nil {
		return 0, err
	}
	return current + 1, nil
}
