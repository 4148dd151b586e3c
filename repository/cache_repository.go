package repository

import (
	"context"
	"time"
)

// CacheRepository stores computed results keyed by calculator and input.
// A miss is reported with ok == false and a nil error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
