package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/store"
)

const (
	// applyMaxRetries bounds how often an optimistic transaction is retried
	// before Apply gives up with ErrConflict.
	applyMaxRetries = 5

	// scanBatchSize is the COUNT hint passed to SCAN.
	scanBatchSize = 100

	// scanFetchConcurrency caps the number of parallel GETs issued while
	// materializing a scan result.
	scanFetchConcurrency = 8
)

// ReviewRecordStore implements store.ReviewRecordStore backed by Redis.
// Records are stored as JSON values with a TTL; Apply uses WATCH-based
// optimistic transactions so concurrent submissions for the same problem
// never lose updates.
type ReviewRecordStore struct {
	client *goredis.Client
	logger *slog.Logger
}

// Compile-time check that ReviewRecordStore satisfies the interface.
var _ store.ReviewRecordStore = (*ReviewRecordStore)(nil)

// NewReviewRecordStore creates a Redis-backed review record store.
func NewReviewRecordStore(client *goredis.Client, logger *slog.Logger) *ReviewRecordStore {
	return &ReviewRecordStore{
		client: client,
		logger: logger.With(slog.String("component", "redis_record_store")),
	}
}

// Get retrieves the record for a key. Returns store.ErrRecordNotFound when no
// record exists.
func (s *ReviewRecordStore) Get(ctx context.Context, key store.RecordKey) (*domain.ProblemReviewRecord, error) {
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	payload, err := s.client.Get(ctx, recordKey(key)).Bytes()
	if err != nil {
		return nil, mapError(err, "review_record", "get", store.ErrRecordNotFound)
	}
	return decodeRecord(payload)
}

// Put saves a record under the key, overwriting any existing value. A ttl of
// 0 stores the record without expiration.
func (s *ReviewRecordStore) Put(ctx context.Context, key store.RecordKey, record *domain.ProblemReviewRecord, ttl time.Duration) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return store.NewStoreError("review_record", "put", "failed to encode record", err)
	}
	if err := s.client.Set(ctx, recordKey(key), payload, ttl).Err(); err != nil {
		return mapError(err, "review_record", "put", store.ErrRecordNotFound)
	}
	return nil
}

// Scan returns every record under the prefix. Keys are collected with SCAN
// and the values fetched concurrently; order is not guaranteed.
func (s *ReviewRecordStore) Scan(ctx context.Context, prefix store.RecordPrefix) ([]*domain.ProblemReviewRecord, error) {
	if err := prefix.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	var keys []string
	iter := s.client.Scan(ctx, 0, recordScanPattern(prefix), scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, mapError(err, "review_record", "scan", store.ErrRecordNotFound)
	}
	// SCAN may return a key more than once across cursor pages.
	sort.Strings(keys)
	keys = dedupeSorted(keys)
	if len(keys) == 0 {
		return nil, nil
	}

	records := make([]*domain.ProblemReviewRecord, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scanFetchConcurrency)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			payload, err := s.client.Get(gctx, key).Bytes()
			if errors.Is(err, goredis.Nil) {
				// Expired between SCAN and GET; skip it.
				return nil
			}
			if err != nil {
				return mapError(err, "review_record", "scan", store.ErrRecordNotFound)
			}
			record, err := decodeRecord(payload)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*domain.ProblemReviewRecord, 0, len(records))
	for _, record := range records {
		if record != nil {
			result = append(result, record)
		}
	}
	return result, nil
}

// Delete removes the record for a key. Returns store.ErrRecordNotFound when
// no record exists.
func (s *ReviewRecordStore) Delete(ctx context.Context, key store.RecordKey) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	removed, err := s.client.Del(ctx, recordKey(key)).Result()
	if err != nil {
		return mapError(err, "review_record", "delete", store.ErrRecordNotFound)
	}
	if removed == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

// Apply performs an atomic read-modify-write for the key using a WATCH-based
// optimistic transaction. The mutate function may run multiple times when
// concurrent writers touch the same key; after applyMaxRetries lost races the
// call fails with store.ErrConflict.
func (s *ReviewRecordStore) Apply(ctx context.Context, key store.RecordKey, ttl time.Duration, mutate store.MutateRecordFunc) (*domain.ProblemReviewRecord, error) {
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	redisKey := recordKey(key)
	var (
		result   *domain.ProblemReviewRecord
		abortErr error
	)

	txn := func(tx *goredis.Tx) error {
		abortErr = nil
		var current *domain.ProblemReviewRecord
		payload, err := tx.Get(ctx, redisKey).Bytes()
		switch {
		case errors.Is(err, goredis.Nil):
			current = nil
		case err != nil:
			return err
		default:
			current, err = decodeRecord(payload)
			if err != nil {
				return err
			}
		}

		next, err := mutate(current)
		if err != nil {
			abortErr = err
			return err
		}
		if err := next.Validate(); err != nil {
			abortErr = fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
			return abortErr
		}

		encoded, err := json.Marshal(next)
		if err != nil {
			return store.NewStoreError("review_record", "apply", "failed to encode record", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, redisKey, encoded, ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = next
		return nil
	}

	for attempt := 0; attempt < applyMaxRetries; attempt++ {
		err := s.client.Watch(ctx, txn, redisKey)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			s.logger.DebugContext(ctx, "optimistic transaction lost race, retrying",
				slog.String("key", redisKey),
				slog.Int("attempt", attempt+1))
			continue
		}
		if abortErr != nil {
			return nil, abortErr
		}
		if isDomainOrStoreErr(err) {
			return nil, err
		}
		return nil, mapError(err, "review_record", "apply", store.ErrRecordNotFound)
	}
	return nil, fmt.Errorf("%w: gave up after %d attempts", store.ErrConflict, applyMaxRetries)
}

// decodeRecord unmarshals a stored JSON payload into a review record.
func decodeRecord(payload []byte) (*domain.ProblemReviewRecord, error) {
	var record domain.ProblemReviewRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, store.NewStoreError("review_record", "decode", "corrupt stored record", err)
	}
	return &record, nil
}

// isDomainOrStoreErr reports whether the error already carries application
// semantics and must not be re-wrapped as a Redis failure.
func isDomainOrStoreErr(err error) bool {
	var storeErr *store.StoreError
	return errors.As(err, &storeErr) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// dedupeSorted removes adjacent duplicates from a sorted slice in place.
func dedupeSorted(keys []string) []string {
	out := keys[:0]
	for i, key := range keys {
		i, key := i, key
		if i == 0 || key != keys[i-1] {
			out = append(out, key)
		}
	}
	return out
}
