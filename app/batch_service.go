package app

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"

	"crooksbayes/internal"
	apperrors "crooksbayes/internal/errors"
)

// BatchService runs independent estimation series concurrently. Each series
// is still folded strictly in sample order internally; only whole series run
// in parallel, bounded by a weighted semaphore.
type BatchService struct {
	service *EstimationService
	sem     *semaphore.Weighted
	logger  *internal.Logger
}

// NewBatchService creates a batch runner allowing maxConcurrent series at once
func NewBatchService(service *EstimationService, maxConcurrent int64) *BatchService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &BatchService{
		service: service,
		sem:     semaphore.NewWeighted(maxConcurrent),
		logger:  internal.NewLogger("BatchService"),
	}
}

// RunBatch executes all requests and returns results in request order.
// A failed series leaves a nil slot in the results; all failures are joined
// into the returned error.
func (b *BatchService) RunBatch(ctx context.Context, reqs []EstimateRequest) ([]*RunResult, error) {
	results := make([]*RunResult, len(reqs))
	errs := make([]error, len(reqs))

	var wg sync.WaitGroup
	for i := range reqs {
		if err := b.sem.Acquire(ctx, 1); err != nil {
			// A failed acquire means the context is done; every remaining
			// series never starts and must still account for its slot.
			for j := i; j < len(reqs); j++ {
				errs[j] = apperrors.Wrapf(err, "series %d not started", j)
			}
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer b.sem.Release(1)
			results[i], errs[i] = b.service.Run(ctx, reqs[i])
		}(i)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		b.logger.Error("batch of %d: %v", len(reqs), err)
		return results, err
	}

	b.logger.Info("batch of %d series completed", len(reqs))
	return results, nil
}
