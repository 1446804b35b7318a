package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gougewatch/internal/data"
	"gougewatch/internal/fetcher"
)

// DatasetResult is one completed dataset fetch.
type DatasetResult struct {
	Request data.DatasetRequest
	Value   any
	Err     error
}

type Scheduler struct {
	fetcher     *fetcher.Fetcher
	concurrency int
}

func NewScheduler(f *fetcher.Fetcher, concurrency int) (*Scheduler, error) {
	if f == nil {
		return nil, errors.New("fetcher is nil")
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	return &Scheduler{fetcher: f, concurrency: concurrency}, nil
}

// Execute streams dataset fetch completion results.
//
// Channel semantics:
//   - In the normal (non-canceled) case, exactly one DatasetResult is sent per
//     distinct dataset request, in completion order.
//   - Per-dataset fetch failures are recorded on DatasetResult.Err, never on
//     the error channel.
//   - On context cancellation, the scheduler stops promptly; it may emit fewer
//     results. The error channel then carries the context error.
//   - Both channels are closed reliably.
func (s *Scheduler) Execute(ctx context.Context, plan *RenderPlan) (<-chan DatasetResult, <-chan error) {
	resultsCh := make(chan DatasetResult)
	errCh := make(chan error, 1)

	go func() {
		defer close(resultsCh)
		defer close(errCh)

		trySendErr := func(err error) {
			if err == nil {
				return
			}
			select {
			case errCh <- err:
			default:
			}
		}

		if ctx == nil {
			trySendErr(errors.New("context is nil"))
			return
		}
		if plan == nil {
			trySendErr(errors.New("render plan is nil"))
			return
		}
		if plan.Requests == nil {
			trySendErr(errors.New("render plan is not initialized (Requests is nil); use NewRenderPlan"))
			return
		}
		if s == nil || s.fetcher == nil {
			trySendErr(errors.New("scheduler is not initialized; use NewScheduler"))
			return
		}

		g, runCtx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)

		for _, req := range plan.SortedRequests() {
			req := req
			if runCtx.Err() != nil {
				break
			}
			g.Go(func() error {
				val, err := s.fetcher.Fetch(runCtx, req)
				res := DatasetResult{Request: req, Value: val, Err: err}
				select {
				case resultsCh <- res:
					return nil
				case <-runCtx.Done():
					return runCtx.Err()
				}
			})
		}

		if err := g.Wait(); err != nil {
			trySendErr(err)
			return
		}
		trySendErr(ctx.Err())
	}()

	return resultsCh, errCh
}
