package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RequestBudget throttles outgoing API requests based on what the backend
// reports back. Supabase fronts PostgREST with a gateway that advertises
// remaining quota via X-RateLimit-* headers and throttles with Retry-After.
type RequestBudget struct {
	mu        sync.Mutex
	remaining int
	reset     time.Time
	now       func() time.Time
	probed    bool
	cooldown  time.Time
	notifyCh  chan struct{}
}

func NewRequestBudget() *RequestBudget {
	return &RequestBudget{
		remaining: 1000, // Conservative start until the backend tells us otherwise
		reset:     time.Now().Add(1 * time.Hour),
		now:       time.Now,
		notifyCh:  make(chan struct{}),
	}
}

func (b *RequestBudget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining
}

// Acquire blocks until one request's worth of budget is available or ctx ends.
func (b *RequestBudget) Acquire(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("Acquire: nil context")
	}
	if b == nil {
		return fmt.Errorf("Acquire: nil RequestBudget")
	}
	if b.now == nil || b.notifyCh == nil {
		return fmt.Errorf("Acquire: RequestBudget is not initialized (use NewRequestBudget)")
	}

	for {
		b.mu.Lock()
		now := b.now()

		// Honor an active Retry-After cooldown before anything else.
		if now.Before(b.cooldown) {
			wakeAt, ch := b.cooldown, b.notifyCh
			b.mu.Unlock()
			if err := b.waitUntil(ctx, now, wakeAt, ch); err != nil {
				return err
			}
			continue
		}

		if b.remaining > 0 {
			b.remaining--
			b.mu.Unlock()
			return nil
		}

		// Quota exhausted. Once the advertised reset has passed, allow exactly
		// one probe request; everyone else waits for UpdateFromResponse.
		if !now.Before(b.reset) {
			if !b.probed {
				b.probed = true
				b.mu.Unlock()
				return nil
			}
			ch := b.notifyCh
			b.mu.Unlock()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ch:
			}
			continue
		}

		wakeAt, ch := b.reset, b.notifyCh
		b.mu.Unlock()
		if err := b.waitUntil(ctx, now, wakeAt, ch); err != nil {
			return err
		}
	}
}

func (b *RequestBudget) waitUntil(ctx context.Context, now, wakeAt time.Time, ch chan struct{}) error {
	wait := wakeAt.Sub(now)
	if wait < 0 {
		wait = 0
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	case <-timer.C:
		return nil
	}
}

func (b *RequestBudget) signalLocked() {
	close(b.notifyCh)
	b.notifyCh = make(chan struct{})
}

// UpdateFromResponse refreshes the budget from rate-limit response headers.
func (b *RequestBudget) UpdateFromResponse(resp *http.Response) {
	if b == nil || resp == nil || b.now == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	changed := false

	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			until := b.now().Add(time.Duration(seconds) * time.Second)
			if until.After(b.cooldown) {
				b.cooldown = until
				changed = true
			}
		}
	}

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil && val >= 0 && b.remaining != val {
			b.remaining = val
			changed = true
		}
	}

	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil && val > 0 {
			newReset := time.Unix(val, 0)
			if !b.reset.Equal(newReset) {
				b.reset = newReset
				changed = true
			}
		}
	}

	if changed {
		b.probed = false
		b.signalLocked()
	}
}
