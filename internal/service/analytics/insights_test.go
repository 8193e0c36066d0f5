package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/domain/ebbinghaus"
	"github.com/sansu-dojo/drill-api/internal/service/analytics"
)

func TestBuildInsights_Empty(t *testing.T) {
	t.Parallel()

	insights := analytics.BuildInsights(nil, time.Now())

	assert.Zero(t, insights.TotalProblems)
	assert.Zero(t, insights.OverallRetentionScore)
	assert.Empty(t, insights.Patterns)
	assert.Equal(t, []float64{100, 58, 44, 35, 26}, insights.ForgettingCurve.Theoretical)
}

func TestBuildInsights_Distribution(t *testing.T) {
	t.Parallel()

	records := []*domain.ProblemReviewRecord{
		recordWithAttempts("p-1", 95, false, true),
		recordWithAttempts("p-2", 70, false, true),
		recordWithAttempts("p-3", 50, false, true),
		recordWithAttempts("p-4", 30, false, true),
		recordWithAttempts("p-5", 10, false, false),
	}

	insights := analytics.BuildInsights(records, time.Now())

	assert.Equal(t, 1, insights.Distribution.Excellent)
	assert.Equal(t, 1, insights.Distribution.Good)
	assert.Equal(t, 1, insights.Distribution.Fair)
	assert.Equal(t, 1, insights.Distribution.Poor)
	assert.Equal(t, 1, insights.Distribution.Critical)
	assert.InDelta(t, 51.0, insights.OverallRetentionScore, 0.001)
}

func TestBuildInsights_PatternsAndCurve(t *testing.T) {
	t.Parallel()

	records := []*domain.ProblemReviewRecord{
		recordWithAttempts("p-perfect", 100, true, true, true, true, true),
		recordWithAttempts("p-weak", 0, false, false, false),
		recordWithAttempts("p-untouched", 0, false),
	}

	insights := analytics.BuildInsights(records, time.Now())

	assert.Equal(t, 1, insights.Patterns[ebbinghaus.PatternPerfect])
	assert.Equal(t, 1, insights.Patterns[ebbinghaus.PatternWeak])
	assert.Equal(t, 1, insights.Patterns[ebbinghaus.PatternUnknown])

	// Stage 0 saw one correct and one incorrect attempt.
	assert.InDelta(t, 50.0, insights.ForgettingCurve.Actual[0], 0.001)
	assert.InDelta(t, 100.0, insights.ForgettingCurve.Actual[3], 0.001)
}

func TestBuildInsights_Forecast(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	records := []*domain.ProblemReviewRecord{
		scheduledRecord("p-today", 1, 0, 50, now),
		scheduledRecord("p-tomorrow", 2, 1, 50, now),
		scheduledRecord("p-week", 3, 5, 50, now),
		scheduledRecord("p-month", 4, 20, 50, now),
		scheduledRecord("p-next-month", 5, 45, 50, now),
		scheduledRecord("p-beyond", 6, 90, 50, now),
	}

	insights := analytics.BuildInsights(records, now)

	assert.Equal(t, 1, insights.Forecast.Today)
	assert.Equal(t, 1, insights.Forecast.Tomorrow)
	assert.Equal(t, 1, insights.Forecast.ThisWeek)
	assert.Zero(t, insights.Forecast.NextWeek)
	assert.Equal(t, 1, insights.Forecast.ThisMonth)
	assert.Equal(t, 1, insights.Forecast.NextMonth)
}

func TestBuildInsights_AverageEfficiency(t *testing.T) {
	t.Parallel()

	// One attempt, correct: efficiency 100. Two attempts, one correct:
	// 0.5 * 0.9 * 100 = 45. Untouched records are excluded from the mean.
	records := []*domain.ProblemReviewRecord{
		recordWithAttempts("p-clean", 10, false, true),
		recordWithAttempts("p-messy", 10, false, true, false),
		recordWithAttempts("p-untouched", 0, false),
	}

	insights := analytics.BuildInsights(records, time.Now())

	require.Equal(t, 3, insights.TotalProblems)
	assert.InDelta(t, (100.0+45.0)/2, insights.AverageEfficiency, 0.001)
}
