package ebbinghaus

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sansu-dojo/drill-api/internal/domain"
)

func newTestRecord(t *testing.T, now time.Time) *domain.ProblemReviewRecord {
	t.Helper()
	record, err := domain.NewProblemReviewRecord(uuid.New(), "unit-07", "prob-3", 3, now)
	require.NoError(t, err)
	return record
}

func correctAttempt(stage domain.ReviewStage, ts time.Time) domain.Attempt {
	return domain.Attempt{
		Stage:     stage,
		IsCorrect: true,
		Timestamp: ts,
		Mode:      domain.StudyModeEbbinghaus,
	}
}

func TestApplyAttempt_CorrectAnswerSchedulesNextStage(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	start := date(2024, time.April, 1, 9)

	testCases := []struct {
		name       string
		stage      domain.ReviewStage
		offsetDays int
	}{
		{name: "stage 0 schedules 1 day out", stage: domain.StageInitial, offsetDays: 1},
		{name: "stage 1 schedules 7 days out", stage: domain.StageDay1, offsetDays: 7},
		{name: "stage 2 schedules 28 days out", stage: domain.StageDay7, offsetDays: 28},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			record := newTestRecord(t, start)

			updated, err := svc.ApplyAttempt(record, correctAttempt(tc.stage, start), start)
			require.NoError(t, err)

			require.NotNil(t, updated.NextReviewDate)
			assert.Equal(t, start.AddDate(0, 0, tc.offsetDays), *updated.NextReviewDate)
			assert.False(t, updated.IsCompleted)
			assert.Equal(t, tc.stage, updated.CurrentStage)
		})
	}
}

func TestApplyAttempt_FinalStageCorrectCompletesReview(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	start := date(2024, time.April, 1, 9)
	record := newTestRecord(t, start)

	updated, err := svc.ApplyAttempt(record, correctAttempt(domain.StageDay28, start), start)
	require.NoError(t, err)

	assert.True(t, updated.IsCompleted)
	assert.Nil(t, updated.NextReviewDate)
	assert.NoError(t, updated.Validate())
}

func TestApplyAttempt_IncorrectAnswerRetriesSameStage(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	start := date(2024, time.April, 1, 9)
	record := newTestRecord(t, start)

	attempt := domain.Attempt{Stage: domain.StageInitial, IsCorrect: false, Timestamp: start}
	updated, err := svc.ApplyAttempt(record, attempt, start)
	require.NoError(t, err)

	require.NotNil(t, updated.NextReviewDate)
	assert.Equal(t, start.AddDate(0, 0, 1), *updated.NextReviewDate)
	assert.False(t, updated.IsCompleted)
	assert.Equal(t, domain.StageInitial, updated.CurrentStage)
	assert.Equal(t, 0.0, updated.RetentionScore)
}

func TestApplyAttempt_FullScheduleScenario(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	start := date(2024, time.April, 1, 9)
	record := newTestRecord(t, start)

	// Stage 0 correct at T: next review T+1d, score 10.
	record, err := svc.ApplyAttempt(record, correctAttempt(domain.StageInitial, start), start)
	require.NoError(t, err)
	assert.Equal(t, domain.StageInitial, record.CurrentStage)
	require.NotNil(t, record.NextReviewDate)
	assert.Equal(t, start.AddDate(0, 0, 1), *record.NextReviewDate)
	assert.False(t, record.IsCompleted)
	assert.Equal(t, 10.0, record.RetentionScore)

	// Stage 1 correct at T+1d: next review T+8d, score 30.
	day1 := start.AddDate(0, 0, 1)
	record, err = svc.ApplyAttempt(record, correctAttempt(domain.StageDay1, day1), day1)
	require.NoError(t, err)
	assert.Equal(t, domain.StageDay1, record.CurrentStage)
	require.NotNil(t, record.NextReviewDate)
	assert.Equal(t, start.AddDate(0, 0, 8), *record.NextReviewDate)
	assert.Equal(t, 30.0, record.RetentionScore)

	// Stage 2 correct at T+8d: next review T+36d, score 60.
	day8 := start.AddDate(0, 0, 8)
	record, err = svc.ApplyAttempt(record, correctAttempt(domain.StageDay7, day8), day8)
	require.NoError(t, err)
	require.NotNil(t, record.NextReviewDate)
	assert.Equal(t, start.AddDate(0, 0, 36), *record.NextReviewDate)
	assert.Equal(t, 60.0, record.RetentionScore)

	// Stage 3 correct at T+36d: completed, score 100.
	day36 := start.AddDate(0, 0, 36)
	record, err = svc.ApplyAttempt(record, correctAttempt(domain.StageDay28, day36), day36)
	require.NoError(t, err)
	assert.True(t, record.IsCompleted)
	assert.Nil(t, record.NextReviewDate)
	assert.Equal(t, 100.0, record.RetentionScore)
	assert.Equal(t, domain.FinalStage, record.CurrentStage)
}

func TestApplyAttempt_ReplayIsIdempotent(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	start := date(2024, time.April, 1, 9)
	record := newTestRecord(t, start)

	attempt := correctAttempt(domain.StageInitial, start)

	once, err := svc.ApplyAttempt(record, attempt, start)
	require.NoError(t, err)

	twice, err := svc.ApplyAttempt(once, attempt, start)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Len(t, twice.Attempts, 1)
}

func TestApplyAttempt_UpsertReplacesSameStage(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	start := date(2024, time.April, 1, 9)
	record := newTestRecord(t, start)

	record, err := svc.ApplyAttempt(record, correctAttempt(domain.StageInitial, start), start)
	require.NoError(t, err)
	assert.Equal(t, 10.0, record.RetentionScore)

	// A later incorrect retry at the same stage supersedes the earlier
	// correct attempt.
	retry := domain.Attempt{Stage: domain.StageInitial, IsCorrect: false, Timestamp: start.AddDate(0, 0, 1)}
	record, err = svc.ApplyAttempt(record, retry, start.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Len(t, record.Attempts, 1)
	assert.False(t, record.Attempts[0].IsCorrect)
	assert.Equal(t, 0.0, record.RetentionScore)
}

func TestApplyAttempt_CurrentStageNeverDecreases(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	start := date(2024, time.April, 1, 9)
	record := newTestRecord(t, start)

	record, err := svc.ApplyAttempt(record, correctAttempt(domain.StageDay7, start), start)
	require.NoError(t, err)
	assert.Equal(t, domain.StageDay7, record.CurrentStage)

	// A failed attempt at a lower stage leaves the high-water mark alone.
	lower := domain.Attempt{Stage: domain.StageInitial, IsCorrect: false, Timestamp: start.AddDate(0, 0, 1)}
	record, err = svc.ApplyAttempt(record, lower, start.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, domain.StageDay7, record.CurrentStage)
}

func TestApplyAttempt_AttemptsStaySortedByStage(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	start := date(2024, time.April, 1, 9)
	record := newTestRecord(t, start)

	record, err := svc.ApplyAttempt(record, correctAttempt(domain.StageDay7, start), start)
	require.NoError(t, err)
	record, err = svc.ApplyAttempt(record, correctAttempt(domain.StageInitial, start.AddDate(0, 0, 1)), start)
	require.NoError(t, err)
	record, err = svc.ApplyAttempt(record, correctAttempt(domain.StageDay1, start.AddDate(0, 0, 2)), start)
	require.NoError(t, err)

	require.Len(t, record.Attempts, 3)
	for i := 1; i < len(record.Attempts); i++ {
		assert.Less(t, record.Attempts[i-1].Stage, record.Attempts[i].Stage)
	}
}

func TestApplyAttempt_RejectsInvalidInput(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	start := date(2024, time.April, 1, 9)

	t.Run("nil record", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ApplyAttempt(nil, correctAttempt(domain.StageInitial, start), start)
		assert.ErrorIs(t, err, ErrNilRecord)
	})

	t.Run("stage out of range", func(t *testing.T) {
		t.Parallel()
		record := newTestRecord(t, start)
		attempt := domain.Attempt{Stage: 4, IsCorrect: true, Timestamp: start}
		_, err := svc.ApplyAttempt(record, attempt, start)
		assert.ErrorIs(t, err, domain.ErrInvalidStage)
	})

	t.Run("negative stage", func(t *testing.T) {
		t.Parallel()
		record := newTestRecord(t, start)
		attempt := domain.Attempt{Stage: -1, IsCorrect: true, Timestamp: start}
		_, err := svc.ApplyAttempt(record, attempt, start)
		assert.ErrorIs(t, err, domain.ErrInvalidStage)
	})

	t.Run("zero timestamp", func(t *testing.T) {
		t.Parallel()
		record := newTestRecord(t, start)
		attempt := domain.Attempt{Stage: domain.StageInitial, IsCorrect: true}
		_, err := svc.ApplyAttempt(record, attempt, start)
		assert.ErrorIs(t, err, domain.ErrMissingTimestamp)
	})

	t.Run("input record is not mutated on success", func(t *testing.T) {
		t.Parallel()
		record := newTestRecord(t, start)
		before := record.Clone()
		_, err := svc.ApplyAttempt(record, correctAttempt(domain.StageInitial, start), start)
		require.NoError(t, err)
		assert.Equal(t, before, record)
	})
}

func TestApplyAttempt_DefaultsEmptyMode(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	start := date(2024, time.April, 1, 9)
	record := newTestRecord(t, start)

	attempt := domain.Attempt{Stage: domain.StageInitial, IsCorrect: true, Timestamp: start}
	updated, err := svc.ApplyAttempt(record, attempt, start)
	require.NoError(t, err)

	require.Len(t, updated.Attempts, 1)
	assert.Equal(t, domain.StudyModeNormal, updated.Attempts[0].Mode)
}
