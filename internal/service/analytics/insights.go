package analytics

import (
	"time"

	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/domain/ebbinghaus"
)

// RetentionDistribution counts records per retention-score band.
type RetentionDistribution struct {
	Excellent int `json:"excellent"` // 90-100
	Good      int `json:"good"`      // 70-89
	Fair      int `json:"fair"`      // 50-69
	Poor      int `json:"poor"`      // 30-49
	Critical  int `json:"critical"`  // 0-29
}

// ForgettingCurve compares the theoretical Ebbinghaus retention curve with
// the user's actual per-stage accuracy. Theoretical has one more point than
// Actual: it extends past the last review stage.
type ForgettingCurve struct {
	Theoretical []float64                  `json:"theoretical"`
	Actual      [domain.StageCount]float64 `json:"actual"`
	Stages      []string                   `json:"stages"`
}

// theoreticalRetention is the classic Ebbinghaus curve sampled at the review
// checkpoints.
var theoreticalRetention = []float64{100, 58, 44, 35, 26}

// ReviewForecast counts scheduled reviews per upcoming window. Windows are
// disjoint; reviews more than 60 days out are not forecast.
type ReviewForecast struct {
	Today     int `json:"today"`
	Tomorrow  int `json:"tomorrow"`
	ThisWeek  int `json:"this_week"`
	NextWeek  int `json:"next_week"`
	ThisMonth int `json:"this_month"`
	NextMonth int `json:"next_month"`
}

// Insights is the retention insight report for a record set.
type Insights struct {
	TotalProblems         int                                  `json:"total_problems"`
	OverallRetentionScore float64                              `json:"overall_retention_score"`
	Distribution          RetentionDistribution                `json:"retention_distribution"`
	Patterns              map[ebbinghaus.RetentionPattern]int  `json:"patterns"`
	ForgettingCurve       ForgettingCurve                      `json:"forgetting_curve"`
	Forecast              ReviewForecast                       `json:"forecast"`
	AverageEfficiency     float64                              `json:"average_efficiency"`
}

// BuildInsights derives the full insight report from a record set.
func BuildInsights(records []*domain.ProblemReviewRecord, now time.Time) Insights {
	insights := Insights{
		TotalProblems: len(records),
		Patterns:      make(map[ebbinghaus.RetentionPattern]int),
		ForgettingCurve: ForgettingCurve{
			Theoretical: theoreticalRetention,
			Stages: []string{
				domain.StageInitial.String(), domain.StageDay1.String(),
				domain.StageDay7.String(), domain.StageDay28.String(),
			},
		},
	}

	var stageCorrect, stageTotal [domain.StageCount]int
	totalScore := 0.0
	totalEfficiency := 0.0
	attempted := 0

	for _, record := range records {
		totalScore += record.RetentionScore
		bumpDistribution(&insights.Distribution, record.RetentionScore)
		insights.Patterns[ebbinghaus.AnalyzePattern(record.Attempts)]++

		if len(record.Attempts) > 0 {
			totalEfficiency += ebbinghaus.Efficiency(record.Attempts)
			attempted++
		}
		for _, attempt := range record.Attempts {
			stageTotal[attempt.Stage]++
			if attempt.IsCorrect {
				stageCorrect[attempt.Stage]++
			}
		}

		bumpForecast(&insights.Forecast, record, now)
	}

	for stage := range insights.ForgettingCurve.Actual {
		if stageTotal[stage] > 0 {
			insights.ForgettingCurve.Actual[stage] =
				float64(stageCorrect[stage]) / float64(stageTotal[stage]) * 100
		}
	}
	if len(records) > 0 {
		insights.OverallRetentionScore = totalScore / float64(len(records))
	}
	if attempted > 0 {
		insights.AverageEfficiency = totalEfficiency / float64(attempted)
	}
	return insights
}

func bumpDistribution(dist *RetentionDistribution, score float64) {
	switch {
	case score >= 90:
		dist.Excellent++
	case score >= 70:
		dist.Good++
	case score >= 50:
		dist.Fair++
	case score >= 30:
		dist.Poor++
	default:
		dist.Critical++
	}
}

func bumpForecast(forecast *ReviewForecast, record *domain.ProblemReviewRecord, now time.Time) {
	if record.IsCompleted || record.NextReviewDate == nil {
		return
	}
	days := ebbinghaus.DaysBetween(now, *record.NextReviewDate)
	switch {
	case days <= 0:
		forecast.Today++
	case days == 1:
		forecast.Tomorrow++
	case days <= 7:
		forecast.ThisWeek++
	case days <= 14:
		forecast.NextWeek++
	case days <= 30:
		forecast.ThisMonth++
	case days <= 60:
		forecast.NextMonth++
	}
}
