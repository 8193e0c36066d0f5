package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sansu-dojo/drill-api/internal/domain"
)

// MemoryReviewRecordStore is an in-memory ReviewRecordStore used in tests and
// local development. TTLs are accepted but not enforced; expiry only matters
// on the Redis backend. All operations copy records on the way in and out so
// callers never share memory with the store.
type MemoryReviewRecordStore struct {
	mu      sync.RWMutex
	records map[RecordKey]*domain.ProblemReviewRecord
}

// Ensure MemoryReviewRecordStore implements ReviewRecordStore.
var _ ReviewRecordStore = (*MemoryReviewRecordStore)(nil)

// NewMemoryReviewRecordStore creates an empty in-memory record store.
func NewMemoryReviewRecordStore() *MemoryReviewRecordStore {
	return &MemoryReviewRecordStore{
		records: make(map[RecordKey]*domain.ProblemReviewRecord),
	}
}

// Get implements ReviewRecordStore.Get.
func (s *MemoryReviewRecordStore) Get(ctx context.Context, key RecordKey) (*domain.ProblemReviewRecord, error) {
	if err := key.Validate(); err != nil {
		return nil, NewStoreError("review_record", "get", "invalid key", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return record.Clone(), nil
}

// Put implements ReviewRecordStore.Put.
func (s *MemoryReviewRecordStore) Put(
	ctx context.Context,
	key RecordKey,
	record *domain.ProblemReviewRecord,
	ttl time.Duration,
) error {
	if err := key.Validate(); err != nil {
		return NewStoreError("review_record", "put", "invalid key", err)
	}
	if err := record.Validate(); err != nil {
		return NewStoreError("review_record", "put", "invalid record", ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = record.Clone()
	return nil
}

// Scan implements ReviewRecordStore.Scan.
func (s *MemoryReviewRecordStore) Scan(ctx context.Context, prefix RecordPrefix) ([]*domain.ProblemReviewRecord, error) {
	if err := prefix.Validate(); err != nil {
		return nil, NewStoreError("review_record", "scan", "invalid prefix", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.ProblemReviewRecord
	for key, record := range s.records {
		if prefix.Matches(key) {
			out = append(out, record.Clone())
		}
	}
	return out, nil
}

// Delete implements ReviewRecordStore.Delete.
func (s *MemoryReviewRecordStore) Delete(ctx context.Context, key RecordKey) error {
	if err := key.Validate(); err != nil {
		return NewStoreError("review_record", "delete", "invalid key", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[key]; !ok {
		return ErrRecordNotFound
	}
	delete(s.records, key)
	return nil
}

// Apply implements ReviewRecordStore.Apply. The whole read-modify-write runs
// under the store lock, so concurrent writers to the same key serialize and
// no update is lost.
func (s *MemoryReviewRecordStore) Apply(
	ctx context.Context,
	key RecordKey,
	ttl time.Duration,
	mutate MutateRecordFunc,
) (*domain.ProblemReviewRecord, error) {
	if err := key.Validate(); err != nil {
		return nil, NewStoreError("review_record", "apply", "invalid key", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var current *domain.ProblemReviewRecord
	if existing, ok := s.records[key]; ok {
		current = existing.Clone()
	}

	updated, err := mutate(current)
	if err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		return nil, NewStoreError("review_record", "apply", "invalid record", ErrInvalidEntity)
	}

	s.records[key] = updated.Clone()
	return updated, nil
}

// MemoryStudyStreakStore is an in-memory StudyStreakStore used in tests and
// local development.
type MemoryStudyStreakStore struct {
	mu      sync.RWMutex
	streaks map[uuid.UUID]*domain.StudyStreak
}

// Ensure MemoryStudyStreakStore implements StudyStreakStore.
var _ StudyStreakStore = (*MemoryStudyStreakStore)(nil)

// NewMemoryStudyStreakStore creates an empty in-memory streak store.
func NewMemoryStudyStreakStore() *MemoryStudyStreakStore {
	return &MemoryStudyStreakStore{
		streaks: make(map[uuid.UUID]*domain.StudyStreak),
	}
}

// Get implements StudyStreakStore.Get.
func (s *MemoryStudyStreakStore) Get(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error) {
	if userID == uuid.Nil {
		return nil, NewStoreError("study_streak", "get", "invalid key", domain.ErrEmptyStreakUserID)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	streak, ok := s.streaks[userID]
	if !ok {
		return nil, ErrStreakNotFound
	}
	return streak.Clone(), nil
}

// Apply implements StudyStreakStore.Apply.
func (s *MemoryStudyStreakStore) Apply(
	ctx context.Context,
	userID uuid.UUID,
	mutate MutateStreakFunc,
) (*domain.StudyStreak, error) {
	if userID == uuid.Nil {
		return nil, NewStoreError("study_streak", "apply", "invalid key", domain.ErrEmptyStreakUserID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var current *domain.StudyStreak
	if existing, ok := s.streaks[userID]; ok {
		current = existing.Clone()
	}

	updated, err := mutate(current)
	if err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		return nil, NewStoreError("study_streak", "apply", "invalid streak", ErrInvalidEntity)
	}

	s.streaks[userID] = updated.Clone()
	return updated, nil
}

// Delete implements StudyStreakStore.Delete.
func (s *MemoryStudyStreakStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return NewStoreError("study_streak", "delete", "invalid key", domain.ErrEmptyStreakUserID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.streaks[userID]; !ok {
		return ErrStreakNotFound
	}
	delete(s.streaks, userID)
	return nil
}
