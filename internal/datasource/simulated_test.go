package datasource

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = Static{"France", "Germany", "Ghana"}

func slowSource(d time.Duration) Source {
	return Func(func(ctx context.Context) ([]string, error) {
		select {
		case <-time.After(d):
			return []string{"Chad"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
}

func TestSimulatedPadsFastFetch(t *testing.T) {
	delay := 60 * time.Millisecond
	src := NewSimulated(sample, WithDelay(delay), WithSeed(1))

	started := time.Now()
	options, err := src.Fetch(context.Background())
	elapsed := time.Since(started)

	require.NoError(t, err)
	assert.Equal(t, []string(sample), options)
	assert.GreaterOrEqual(t, elapsed, delay)
}

func TestSimulatedDoesNotShortenSlowFetch(t *testing.T) {
	inner := 80 * time.Millisecond
	src := NewSimulated(slowSource(inner), WithDelay(10*time.Millisecond), WithSeed(1))

	started := time.Now()
	options, err := src.Fetch(context.Background())
	elapsed := time.Since(started)

	require.NoError(t, err)
	assert.Equal(t, []string{"Chad"}, options)
	assert.GreaterOrEqual(t, elapsed, inner)
	assert.Less(t, elapsed, inner+10*time.Millisecond+500*time.Millisecond, "delays must overlap, not add up")
}

func TestSimulatedErrorRate(t *testing.T) {
	t.Run("rate one always fails with configured error", func(t *testing.T) {
		boom := errors.New("backend down")
		src := NewSimulated(sample, WithErrorRate(1.0), WithError(boom), WithSeed(7))
		for i := 0; i < 20; i++ {
			options, err := src.Fetch(context.Background())
			assert.ErrorIs(t, err, boom)
			assert.Nil(t, options)
		}
	})

	t.Run("rate zero never fails", func(t *testing.T) {
		src := NewSimulated(sample, WithErrorRate(0), WithSeed(7))
		for i := 0; i < 20; i++ {
			_, err := src.Fetch(context.Background())
			assert.NoError(t, err)
		}
	})

	t.Run("default error is ErrInjected", func(t *testing.T) {
		src := NewSimulated(sample, WithErrorRate(1))
		_, err := src.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrInjected)
	})

	t.Run("rate is clamped", func(t *testing.T) {
		assert.Equal(t, 1.0, NewSimulated(sample, WithErrorRate(3)).errorRate)
		assert.Equal(t, 0.0, NewSimulated(sample, WithErrorRate(-1)).errorRate)
	})
}

func TestSimulatedSeedIsDeterministic(t *testing.T) {
	outcomes := func(seed uint64) []bool {
		src := NewSimulated(sample, WithErrorRate(0.5), WithSeed(seed))
		var failed []bool
		for i := 0; i < 16; i++ {
			_, err := src.Fetch(context.Background())
			failed = append(failed, err != nil)
		}
		return failed
	}

	assert.Equal(t, outcomes(42), outcomes(42))
}

func TestSimulatedDrawMatchesRandSource(t *testing.T) {
	// With the same generator state the simulated draw decides exactly like a manual one.
	expected := rand.New(rand.NewPCG(3, 3)).Float64() < 0.5

	src := NewSimulated(sample, WithErrorRate(0.5), WithRand(rand.New(rand.NewPCG(3, 3))))
	_, err := src.Fetch(context.Background())

	assert.Equal(t, expected, err != nil)
}

func TestSimulatedPropagatesInnerError(t *testing.T) {
	boom := errors.New("dns failure")
	inner := Func(func(context.Context) ([]string, error) {
		return nil, boom
	})
	src := NewSimulated(inner, WithDelay(time.Hour), WithErrorRate(0))

	started := time.Now()
	_, err := src.Fetch(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Less(t, time.Since(started), time.Second, "inner failures are not padded")
}

func TestSimulatedHonoursContext(t *testing.T) {
	src := NewSimulated(sample, WithDelay(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := src.Fetch(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStaticFetchReturnsCopy(t *testing.T) {
	options, err := sample.Fetch(context.Background())
	require.NoError(t, err)

	options[0] = "Changed"
	assert.Equal(t, "France", sample[0])
}

func TestOffline(t *testing.T) {
	src, err := Offline()
	require.NoError(t, err)

	options, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, options, "Germany")
	assert.Contains(t, options, "Ghana")
	assert.Contains(t, options, "France")
}
