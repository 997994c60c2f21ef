package core

// limiter.go bounds how many uploads are parsed and how many charts are
// rendered at the same time. Both are CPU and memory heavy relative to the
// rest of the request path. When all slots are taken a caller waits up to
// maxWait, then fails with the limiter's busy error.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Busy errors returned when no slot frees up in time.
var (
	ErrTooManyUploads = errors.New("too many concurrent uploads, please try again later")
	ErrTooManyCharts  = errors.New("too many concurrent charts, please try again later")
)

const (
	defaultMaxConcurrent = 4
	defaultMaxWait       = 10 * time.Second
)

// Limiter is a counting semaphore with a bounded wait.
type Limiter struct {
	slots   chan struct{}
	maxWait time.Duration
	busy    error
	active  atomic.Int64
}

// NewLimiter allows at most maxConcurrent holders. Callers that cannot get a
// slot within maxWait receive busy.
func NewLimiter(maxConcurrent int, maxWait time.Duration, busy error) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	if maxWait <= 0 {
		maxWait = defaultMaxWait
	}
	return &Limiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
		busy:    busy,
	}
}

// Acquire takes a slot. The caller must call Release exactly once after a
// nil return.
func (l *Limiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return l.busy
	}
}

// Release frees a slot taken by Acquire.
func (l *Limiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Do runs fn while holding a slot.
func (l *Limiter) Do(ctx context.Context, fn func() error) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()
	return fn()
}

// Active returns the number of slots currently held.
func (l *Limiter) Active() int {
	return int(l.active.Load())
}

// Capacity returns the maximum number of concurrent holders.
func (l *Limiter) Capacity() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no slot is held or ctx is done.
// Used during shutdown so in-flight uploads finish.
func (l *Limiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.Active() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
