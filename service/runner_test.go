package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calc-hub/domain"
	"calc-hub/logging"
	"calc-hub/repository"
)

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	calc := NewMathService()
	input := domain.PercentageInput{Mode: domain.PercentOf, A: 10, B: 200}

	t.Run("second call is served from cache", func(t *testing.T) {
		cache := repository.NewMemoryCache()
		runner := NewRunner(cache, nil, time.Minute, logging.Discard())

		calls := 0
		fn := func(in domain.PercentageInput) (domain.PercentageResult, error) {
			calls++
			return calc.CalculatePercentage(in)
		}

		first, cached, err := Run(ctx, runner, Job{Name: "percentage"}, "", input, fn)
		require.NoError(t, err)
		assert.False(t, cached)

		second, cached, err := Run(ctx, runner, Job{Name: "percentage"}, "", input, fn)
		require.NoError(t, err)
		assert.True(t, cached)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("no cache jobs always run", func(t *testing.T) {
		cache := repository.NewMemoryCache()
		runner := NewRunner(cache, nil, time.Minute, logging.Discard())
		seed := uint64(7)

		for range 2 {
			_, cached, err := Run(ctx, runner, Job{Name: "random", NoCache: true}, "",
				domain.RandomInput{Min: 1, Max: 6, Seed: &seed}, calc.GenerateRandom)
			require.NoError(t, err)
			assert.False(t, cached)
		}
		assert.Zero(t, cache.Len())
	})

	t.Run("history is saved for signed-in users", func(t *testing.T) {
		store := repository.NewMemoryStore()
		runner := NewRunner(repository.NewMemoryCache(), store.Calculations(), time.Minute, logging.Discard())

		for range 2 {
			_, _, err := Run(ctx, runner, Job{Name: "percentage"}, "user-1", input, calc.CalculatePercentage)
			require.NoError(t, err)
		}
		_, _, err := Run(ctx, runner, Job{Name: "percentage"}, "", input, calc.CalculatePercentage)
		require.NoError(t, err)

		history, err := store.Calculations().ListByUser(ctx, "user-1", 0)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "percentage", history[0].Calculator)
		assert.JSONEq(t, `{"mode":"percent_of","a":10,"b":200}`, string(history[0].Input))
		assert.Contains(t, string(history[0].Result), `"result":20`)
	})

	t.Run("errors are not cached or saved", func(t *testing.T) {
		cache := repository.NewMemoryCache()
		store := repository.NewMemoryStore()
		runner := NewRunner(cache, store.Calculations(), time.Minute, logging.Discard())

		_, _, err := Run(ctx, runner, Job{Name: "percentage"}, "user-1",
			domain.PercentageInput{Mode: domain.PercentWhat, A: 1}, calc.CalculatePercentage)
		assert.ErrorIs(t, err, domain.ErrDivisionByZero)
		assert.Zero(t, cache.Len())

		history, err := store.Calculations().ListByUser(ctx, "user-1", 0)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("cache failures do not fail the calculation", func(t *testing.T) {
		runner := NewRunner(failingCache{}, nil, time.Minute, logging.Discard())

		result, cached, err := Run(ctx, runner, Job{Name: "percentage"}, "", input, calc.CalculatePercentage)
		require.NoError(t, err)
		assert.False(t, cached)
		assert.Equal(t, 20.0, result.Result)
	})
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("loan", []byte(`{"amount":1}`))
	b := CacheKey("loan", []byte(`{"amount":2}`))
	c := CacheKey("payment", []byte(`{"amount":1}`))

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^calc:loan:[0-9a-f]{16}$`, a)
}
