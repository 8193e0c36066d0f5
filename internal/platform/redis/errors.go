package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sansu-dojo/drill-api/internal/store"
)

// mapError translates a go-redis error into the store package's error
// vocabulary. redis.Nil becomes the given notFound sentinel; context errors
// pass through unchanged; everything else is treated as the store being
// unavailable so callers can choose their retry policy.
func mapError(err error, entity, operation string, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, goredis.Nil) {
		return notFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return store.NewStoreError(entity, operation, "redis command failed", store.ErrUnavailable)
}
