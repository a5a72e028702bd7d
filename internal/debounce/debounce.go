// Package debounce delays propagation of a changing value until it has been quiet
// for a configured interval.
package debounce

import (
	"sync"
	"time"
)

// Debouncer holds the last settled value of a stream of updates.
//
// Every Schedule restarts the timer; only a value that is not superseded for the
// whole delay is settled. A timer that fires after being superseded or cancelled is
// ignored (sequence number check), so a stale value is never applied.
//
// All methods are safe for concurrent use. onSettle runs on the timer goroutine,
// outside the internal lock, and never concurrently with itself.
type Debouncer[T any] struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	seq      uint64
	pending  bool
	closed   bool
	value    T
	onSettle func(T)

	settleMu sync.Mutex
}

// New creates a debouncer whose settled value starts at initial.
func New[T any](initial T, delay time.Duration, onSettle func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay:    delay,
		value:    initial,
		onSettle: onSettle,
	}
}

// Schedule starts a fresh delay for v, cancelling any pending value.
// Calls after Close are ignored.
func (d *Debouncer[T]) Schedule(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	d.seq++
	current := d.seq
	d.pending = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.settle(current, v)
	})
}

func (d *Debouncer[T]) settle(seq uint64, v T) {
	d.settleMu.Lock()
	defer d.settleMu.Unlock()

	d.mu.Lock()
	if d.closed || !d.pending || d.seq != seq {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.value = v
	callback := d.onSettle
	d.mu.Unlock()

	if callback != nil {
		callback(v)
	}
}

// CancelPending drops the pending value, if any, without settling it.
func (d *Debouncer[T]) CancelPending() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

func (d *Debouncer[T]) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	// invalidates a timer callback that is already running
	d.seq++
	d.pending = false
}

// Value returns the last settled value.
func (d *Debouncer[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Pending reports whether a value is waiting to settle.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Delay returns the configured quiet interval.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Close cancels any pending value. The debouncer settles nothing afterwards.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.closed = true
}
