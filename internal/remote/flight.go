package remote

import (
	"context"
	"sync"
)

// flight coalesces concurrent fetches of a single value. Callers that
// arrive while a fetch is in progress wait for its result instead of
// issuing a duplicate request. The first success is cached for the process
// lifetime; a failure lets the next caller retry.
type flight[T any] struct {
	mu      sync.Mutex
	cached  bool
	value   T
	pending chan struct{}
	lastErr error
}

func (f *flight[T]) Do(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	f.mu.Lock()
	if f.cached {
		value := f.value
		f.mu.Unlock()
		return value, nil
	}
	if f.pending != nil {
		pending := f.pending
		f.mu.Unlock()
		select {
		case <-pending:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.cached {
			return f.value, nil
		}
		return zero, f.lastErr
	}

	pending := make(chan struct{})
	f.pending = pending
	f.mu.Unlock()

	value, err := fetch(ctx)

	f.mu.Lock()
	if err == nil {
		f.cached = true
		f.value = value
	}
	f.lastErr = err
	f.pending = nil
	f.mu.Unlock()
	close(pending)

	return value, err
}
