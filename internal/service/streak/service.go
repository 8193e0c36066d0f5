package streak

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/platform/logger"
	"github.com/sansu-dojo/drill-api/internal/service"
	"github.com/sansu-dojo/drill-api/internal/store"
)

// ErrInvalidProblemCount is returned when a study event reports fewer than
// one solved problem.
var ErrInvalidProblemCount = errors.New("problems solved must be positive")

// StreakService manages per-user study streaks.
type StreakService interface {
	// Get returns the user's streak. A user who has never studied gets the
	// zero-state streak, not an error.
	Get(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error)

	// RecordStudy registers solved problems at now and returns the updated
	// streak. The update is atomic per user.
	RecordStudy(ctx context.Context, userID uuid.UUID, problemsSolved int, now time.Time) (*domain.StudyStreak, error)

	// Reset removes the user's streak entirely. Resetting a user without a
	// streak is a no-op.
	Reset(ctx context.Context, userID uuid.UUID) error
}

// Verify interface compliance at compile time.
var _ StreakService = (*streakServiceImpl)(nil)

type streakServiceImpl struct {
	streaks   store.StudyStreakStore
	dailyGoal int
	logger    *slog.Logger
}

// NewStreakService creates a new StreakService implementation. dailyGoal is
// the problems-per-day threshold for a day to count; values below 1 fall back
// to DefaultDailyGoal.
func NewStreakService(streaks store.StudyStreakStore, dailyGoal int, logger *slog.Logger) StreakService {
	if streaks == nil {
		panic("streaks store cannot be nil")
	}
	if dailyGoal < 1 {
		dailyGoal = DefaultDailyGoal
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &streakServiceImpl{
		streaks:   streaks,
		dailyGoal: dailyGoal,
		logger:    logger.With(slog.String("component", "streak_service")),
	}
}

func (s *streakServiceImpl) Get(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error) {
	streak, err := s.streaks.Get(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.NewStudyStreak(userID)
		}
		return nil, service.NewServiceError("get_streak", "failed to load streak", err)
	}
	return streak, nil
}

func (s *streakServiceImpl) RecordStudy(
	ctx context.Context,
	userID uuid.UUID,
	problemsSolved int,
	now time.Time,
) (*domain.StudyStreak, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if problemsSolved < 1 {
		return nil, ErrInvalidProblemCount
	}

	updated, err := s.streaks.Apply(ctx, userID,
		func(current *domain.StudyStreak) (*domain.StudyStreak, error) {
			if current == nil {
				fresh, err := domain.NewStudyStreak(userID)
				if err != nil {
					return nil, err
				}
				current = fresh
			}
			return advance(current, problemsSolved, s.dailyGoal, now), nil
		})
	if err != nil {
		if errors.Is(err, store.ErrConflict) || errors.Is(err, store.ErrInvalidEntity) {
			return nil, err
		}
		log.Error("failed to record study event",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, service.NewServiceError("record_study", "failed to update streak", err)
	}

	log.Debug("study event recorded",
		slog.String("user_id", userID.String()),
		slog.Int("problems_solved", problemsSolved),
		slog.Int("current_streak", updated.CurrentStreak))
	return updated, nil
}

func (s *streakServiceImpl) Reset(ctx context.Context, userID uuid.UUID) error {
	err := s.streaks.Delete(ctx, userID)
	if err != nil && !store.IsNotFoundError(err) {
		return service.NewServiceError("reset_streak", "failed to delete streak", err)
	}
	return nil
}
