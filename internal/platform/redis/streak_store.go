package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/google/uuid"

	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/store"
)

// StudyStreakStore implements store.StudyStreakStore backed by Redis. Streaks
// are small per-user JSON values without expiration; Apply uses the same
// WATCH-based optimistic transaction as the record store.
type StudyStreakStore struct {
	client *goredis.Client
	logger *slog.Logger
}

var _ store.StudyStreakStore = (*StudyStreakStore)(nil)

// NewStudyStreakStore creates a Redis-backed study streak store.
func NewStudyStreakStore(client *goredis.Client, logger *slog.Logger) *StudyStreakStore {
	return &StudyStreakStore{
		client: client,
		logger: logger.With(slog.String("component", "redis_streak_store")),
	}
}

// Get retrieves a user's streak. Returns store.ErrStreakNotFound when the
// user has never studied.
func (s *StudyStreakStore) Get(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyStreakUserID)
	}

	payload, err := s.client.Get(ctx, streakKey(userID)).Bytes()
	if err != nil {
		return nil, mapError(err, "study_streak", "get", store.ErrStreakNotFound)
	}
	return decodeStreak(payload)
}

// Apply performs an atomic read-modify-write of the user's streak.
func (s *StudyStreakStore) Apply(ctx context.Context, userID uuid.UUID, mutate store.MutateStreakFunc) (*domain.StudyStreak, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyStreakUserID)
	}

	redisKey := streakKey(userID)
	var (
		result   *domain.StudyStreak
		abortErr error
	)

	txn := func(tx *goredis.Tx) error {
		abortErr = nil
		var current *domain.StudyStreak
		payload, err := tx.Get(ctx, redisKey).Bytes()
		switch {
		case errors.Is(err, goredis.Nil):
			current = nil
		case err != nil:
			return err
		default:
			current, err = decodeStreak(payload)
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
			return store.NewStoreError("study_streak", "apply", "failed to encode streak", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, redisKey, encoded, 0)
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
		return nil, mapError(err, "study_streak", "apply", store.ErrStreakNotFound)
	}
	return nil, fmt.Errorf("%w: gave up after %d attempts", store.ErrConflict, applyMaxRetries)
}

// Delete removes a user's streak. Returns store.ErrStreakNotFound when the
// user has no streak.
func (s *StudyStreakStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyStreakUserID)
	}

	removed, err := s.client.Del(ctx, streakKey(userID)).Result()
	if err != nil {
		return mapError(err, "study_streak", "delete", store.ErrStreakNotFound)
	}
	if removed == 0 {
		return store.ErrStreakNotFound
	}
	return nil
}

func decodeStreak(payload []byte) (*domain.StudyStreak, error) {
	var streak domain.StudyStreak
	if err := json.Unmarshal(payload, &streak); err != nil {
		return nil, store.NewStoreError("study_streak", "decode", "corrupt stored streak", err)
	}
	return &streak, nil
}
