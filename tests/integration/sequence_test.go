package integration

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/tradebooks/tradebooks/internal/adapter/repository/postgres"
	"github.com/tradebooks/tradebooks/tests/testutil"
)

func TestSequenceConcurrentAllocations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	repo := postgres.NewSequenceRepository(testDB.Pool)

	const workers = 50

	var (
		mu   sync.Mutex
		seen = make(map[int64]bool, workers)
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			value, err := repo.Increment(gctx, "voucher")
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if seen[value] {
				t.Errorf("value %d allocated twice", value)
			}
			seen[value] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent increments failed: %v", err)
	}

	if len(seen) != workers {
		t.Fatalf("expected %d distinct values, got %d", workers, len(seen))
	}

	current, err := repo.Current(ctx, "voucher")
	if err != nil {
		t.Fatalf("read current value: %v", err)
	}
	if current != workers {
		t.Fatalf("expected counter at %d, got %d", workers, current)
	}
}
