package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"

	"calc-hub/domain"
	"calc-hub/repository"
)

// Runner wraps calculator functions with result caching and per-user
// history. Neither is allowed to fail a calculation.
type Runner struct {
	cache   repository.CacheRepository
	history repository.CalculationRepository
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

func NewRunner(
	cache repository.CacheRepository,
	history repository.CalculationRepository,
	ttl time.Duration,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		cache:   cache,
		history: history,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Job names the calculator being run.
type Job struct {
	Name string
	// NoCache is set for calculators whose output must differ per call.
	NoCache bool
}

// CacheKey is calc:<name>:<xxhash of the JSON input>.
func CacheKey(name string, input []byte) string {
	return fmt.Sprintf("calc:%s:%016x", name, xxhash.Sum64(input))
}

// Run executes fn for input, serving and filling the cache and recording the
// calculation for userID when it is not empty. cached reports a cache hit.
func Run[I, R any](
	ctx context.Context,
	r *Runner,
	job Job,
	userID string,
	input I,
	fn func(I) (R, error),
) (result R, cached bool, err error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return result, false, fmt.Errorf("encode %s input: %w", job.Name, err)
	}
	key := CacheKey(job.Name, inputJSON)

	var resultJSON []byte
	if !job.NoCache && r.cache != nil {
		if raw, ok, err := r.cache.Get(ctx, key); err != nil {
			r.logger.WarnContext(ctx, "cache get failed", "calculator", job.Name, "error", err)
		} else if ok {
			if err := json.Unmarshal(raw, &result); err != nil {
				r.logger.WarnContext(ctx, "discarding unreadable cache entry", "calculator", job.Name, "error", err)
			} else {
				cached = true
				resultJSON = raw
			}
		}
	}

	if !cached {
		if result, err = fn(input); err != nil {
			return result, false, err
		}
		if resultJSON, err = json.Marshal(result); err != nil {
			return result, false, fmt.Errorf("encode %s result: %w", job.Name, err)
		}
		if !job.NoCache && r.cache != nil {
			if err := r.cache.Set(ctx, key, resultJSON, r.ttl); err != nil {
				r.logger.WarnContext(ctx, "cache set failed", "calculator", job.Name, "error", err)
			}
		}
	}

	if userID != "" && r.history != nil {
		calc := &domain.Calculation{
			UserID:     userID,
			Calculator: job.Name,
			Input:      inputJSON,
			Result:     resultJSON,
			CreatedAt:  r.now().UTC(),
		}
		if err := r.history.Save(ctx, calc); err != nil {
			r.logger.WarnContext(ctx, "history save failed", "calculator", job.Name, "user_id", userID, "error", err)
		}
	}

	r.logger.DebugContext(ctx, "calculation done", "calculator", job.Name, "cached", cached)
	return result, cached, nil
}
