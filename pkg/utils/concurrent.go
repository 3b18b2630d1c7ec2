package utils

import (
	"context"
	"fmt"
	"sync"
)

// ParallelMap applies fn to every item with at most maxConcurrent calls in
// flight. Results keep input order. The first error encountered fails the
// whole call.
func ParallelMap[T any, R any](ctx context.Context, items []T, maxConcurrent int, fn func(context.Context, T) (R, error)) ([]R, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	results := make([]R, len(items))
	errs := make([]error, len(items))
	sem := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(idx int, item T) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}

			results[idx], errs[idx] = fn(ctx, item)
		}(i, item)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("error processing item %d: %w", i, err)
		}
	}
	return results, nil
}
