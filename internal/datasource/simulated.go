package datasource

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Simulated wraps another Source with artificial latency and random failures so
// the typeahead's loading and error states can be exercised.
//
// A Fetch completes no earlier than Delay: the inner fetch and the delay run side by
// side and the call waits for both, so a slow inner fetch is never shortened. After
// the wait one uniform draw in [0, 1) is taken; below ErrorRate the call fails with
// Err. An inner failure is returned as soon as it happens, without padding or draw.
type Simulated struct {
	inner     Source
	delay     time.Duration
	errorRate float64
	err       error

	mu  sync.Mutex
	rng *rand.Rand
}

// SimulatedOption configures a Simulated source.
type SimulatedOption func(*Simulated)

// WithDelay sets the minimum observable fetch time.
func WithDelay(d time.Duration) SimulatedOption {
	return func(s *Simulated) {
		s.delay = d
	}
}

// WithErrorRate sets the probability of an injected failure, clamped to [0, 1].
func WithErrorRate(rate float64) SimulatedOption {
	return func(s *Simulated) {
		s.errorRate = min(max(rate, 0), 1)
	}
}

// WithError sets the error returned by injected failures.
func WithError(err error) SimulatedOption {
	return func(s *Simulated) {
		if err != nil {
			s.err = err
		}
	}
}

// WithSeed makes the failure draws deterministic.
func WithSeed(seed uint64) SimulatedOption {
	return func(s *Simulated) {
		s.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand uses r for the failure draws.
func WithRand(r *rand.Rand) SimulatedOption {
	return func(s *Simulated) {
		if r != nil {
			s.rng = r
		}
	}
}

// NewSimulated wraps inner. Without options it adds no delay and never fails.
func NewSimulated(inner Source, opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		inner: inner,
		err:   ErrInjected,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return s
}

type fetchResult struct {
	options []string
	err     error
}

// Fetch runs the inner fetch padded to the configured delay and may inject a failure.
func (s *Simulated) Fetch(ctx context.Context) ([]string, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	done := make(chan fetchResult, 1)
	go func() {
		options, err := s.inner.Fetch(ctx)
		done <- fetchResult{options: options, err: err}
	}()

	var result fetchResult
	select {
	case result = <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if result.err != nil {
		return nil, result.err
	}

	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if s.draw() < s.errorRate {
		return nil, s.err
	}
	return result.options, nil
}

func (s *Simulated) draw() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
