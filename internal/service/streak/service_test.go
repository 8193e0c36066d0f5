package streak_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sansu-dojo/drill-api/internal/service/streak"
	"github.com/sansu-dojo/drill-api/internal/store"
)

func newStreakService(t *testing.T) streak.StreakService {
	t.Helper()
	return streak.NewStreakService(
		store.NewMemoryStudyStreakStore(),
		3,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGet_ZeroStateForNewUser(t *testing.T) {
	t.Parallel()

	svc := newStreakService(t)
	userID := uuid.New()

	got, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Zero(t, got.CurrentStreak)
	assert.True(t, got.LastStudyDate.IsZero())
}

func TestRecordStudy_DayCountsOnceGoalReached(t *testing.T) {
	t.Parallel()

	svc := newStreakService(t)
	userID := uuid.New()
	day := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	// Two problems: below the goal, day not counted yet.
	got, err := svc.RecordStudy(context.Background(), userID, 2, day)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TodayProblems)
	assert.Zero(t, got.CurrentStreak)
	assert.True(t, got.LastStudyDate.IsZero())

	// Third problem later the same day crosses the goal.
	got, err = svc.RecordStudy(context.Background(), userID, 1, day.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, got.TodayProblems)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 1, got.TotalStudyDays)
	assert.False(t, got.FirstStudyDate.IsZero())

	// More problems the same day do not count the day twice.
	got, err = svc.RecordStudy(context.Background(), userID, 5, day.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 1, got.TotalStudyDays)
	assert.Equal(t, 8, got.TodayProblems)
	assert.Equal(t, 8, got.TotalProblems)
}

func TestRecordStudy_ConsecutiveDaysGrowStreak(t *testing.T) {
	t.Parallel()

	svc := newStreakService(t)
	userID := uuid.New()
	day := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		got, err := svc.RecordStudy(context.Background(), userID, 3, day.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.Equal(t, i+1, got.CurrentStreak)
	}

	got, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 3, got.MaxStreak)
	assert.Equal(t, 3, got.TotalStudyDays)
}

func TestRecordStudy_GapResetsStreakButKeepsMax(t *testing.T) {
	t.Parallel()

	svc := newStreakService(t)
	userID := uuid.New()
	day := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	_, err := svc.RecordStudy(context.Background(), userID, 3, day)
	require.NoError(t, err)
	_, err = svc.RecordStudy(context.Background(), userID, 3, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	// Three-day gap.
	got, err := svc.RecordStudy(context.Background(), userID, 3, day.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 2, got.MaxStreak)
	assert.Equal(t, 3, got.TotalStudyDays)
}

func TestRecordStudy_TodayProblemsRollOver(t *testing.T) {
	t.Parallel()

	svc := newStreakService(t)
	userID := uuid.New()
	day := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	// Two problems today, below the goal; one problem the next day starts a
	// fresh daily count instead of accumulating.
	_, err := svc.RecordStudy(context.Background(), userID, 2, day)
	require.NoError(t, err)
	got, err := svc.RecordStudy(context.Background(), userID, 1, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, got.TodayProblems)
	assert.Equal(t, 3, got.TotalProblems)
	assert.Zero(t, got.CurrentStreak)
}

func TestRecordStudy_RejectsNonPositiveCount(t *testing.T) {
	t.Parallel()

	svc := newStreakService(t)

	_, err := svc.RecordStudy(context.Background(), uuid.New(), 0, time.Now())
	assert.ErrorIs(t, err, streak.ErrInvalidProblemCount)
}

func TestReset_RemovesStreak(t *testing.T) {
	t.Parallel()

	svc := newStreakService(t)
	userID := uuid.New()

	_, err := svc.RecordStudy(context.Background(), userID, 3, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.Reset(context.Background(), userID))

	got, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, got.CurrentStreak)
	assert.Zero(t, got.TotalProblems)

	// Resetting again is a no-op.
	assert.NoError(t, svc.Reset(context.Background(), userID))
}
