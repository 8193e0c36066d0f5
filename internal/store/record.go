package store

import (
	"context"
	"time"

	"github.com/sansu-dojo/drill-api/internal/domain"
)

// MutateRecordFunc computes a record's successor state inside an atomic
// read-modify-write. It receives nil when no record exists yet for the key
// and must return either the record to persist or an error, which aborts the
// write. The function may be invoked more than once under contention, so it
// must be side-effect free.
type MutateRecordFunc func(current *domain.ProblemReviewRecord) (*domain.ProblemReviewRecord, error)

// ReviewRecordStore defines the interface for problem review record
// persistence. Records are addressed by the composite (user, unit, problem)
// key.
// Version: 1.0
type ReviewRecordStore interface {
	// Get retrieves the record for a key.
	// Returns ErrRecordNotFound if no record exists.
	Get(ctx context.Context, key RecordKey) (*domain.ProblemReviewRecord, error)

	// Put saves a record under the key, overwriting any existing value. A
	// ttl of 0 means the record never expires. It handles domain validation
	// internally and returns ErrInvalidEntity wrapping the domain error when
	// the record is invalid.
	Put(ctx context.Context, key RecordKey, record *domain.ProblemReviewRecord, ttl time.Duration) error

	// Scan returns every record under the prefix. Order is not guaranteed;
	// callers that need deterministic ordering sort the result themselves.
	Scan(ctx context.Context, prefix RecordPrefix) ([]*domain.ProblemReviewRecord, error)

	// Delete removes the record for a key.
	// Returns ErrRecordNotFound if no record exists.
	Delete(ctx context.Context, key RecordKey) error

	// Apply performs an atomic read-modify-write for the key: it reads the
	// current record (nil if absent), passes it to mutate, and persists the
	// result with the given ttl so that no concurrent writer's update is
	// lost. Implementations provide the atomicity (optimistic
	// compare-and-swap or a per-key lock) and may call mutate multiple times
	// under contention. Returns ErrConflict when retries are exhausted and
	// the mutate function's error unchanged when it aborts.
	Apply(ctx context.Context, key RecordKey, ttl time.Duration, mutate MutateRecordFunc) (*domain.ProblemReviewRecord, error)
}
