package analytics

import (
	"sort"

	"github.com/sansu-dojo/drill-api/internal/domain"
)

// CompletionStatus classifies how far along a unit's review work is.
type CompletionStatus string

// Completion status values, from best to worst.
const (
	StatusMastered       CompletionStatus = "mastered"
	StatusGood           CompletionStatus = "good"
	StatusFair           CompletionStatus = "fair"
	StatusInProgress     CompletionStatus = "in_progress"
	StatusNeedsAttention CompletionStatus = "needs_attention"
)

// StageResult aggregates attempt outcomes at one review stage. Attempted and
// Correct count attempt events, not problems; Accuracy is a 0-100 percentage.
type StageResult struct {
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// UnitStats is the derived per-unit statistics block. It is recomputed from
// the unit's records on every query and never stored.
type UnitStats struct {
	UnitID            string           `json:"unit_id"`
	TotalProblems     int              `json:"total_problems"`
	CompletedProblems int              `json:"completed_problems"`
	CompletionRate    float64          `json:"completion_rate"`

	StageResults         [domain.StageCount]StageResult `json:"stage_results"`
	RetentionProgression [domain.StageCount]float64     `json:"retention_progression"`

	UnitRetentionScore float64          `json:"unit_retention_score"`
	CompletionStatus   CompletionStatus `json:"completion_status"`
	ImprovementRate    float64          `json:"improvement_rate"`
}

// AggregateUnit rolls one unit's records into its statistics block.
func AggregateUnit(unitID string, records []*domain.ProblemReviewRecord) UnitStats {
	stats := UnitStats{UnitID: unitID}

	totalScore := 0.0
	hasInProgress := false
	for _, record := range records {
		stats.TotalProblems++
		if record.IsCompleted {
			stats.CompletedProblems++
		}
		if len(record.Attempts) > 0 && !record.IsCompleted {
			hasInProgress = true
		}
		totalScore += record.RetentionScore

		for _, attempt := range record.Attempts {
			result := &stats.StageResults[attempt.Stage]
			result.Attempted++
			if attempt.IsCorrect {
				result.Correct++
			}
		}
	}

	for stage := range stats.StageResults {
		result := &stats.StageResults[stage]
		if result.Attempted > 0 {
			result.Accuracy = float64(result.Correct) / float64(result.Attempted) * 100
		}
		stats.RetentionProgression[stage] = result.Accuracy
	}

	if stats.TotalProblems > 0 {
		stats.UnitRetentionScore = totalScore / float64(stats.TotalProblems)
		stats.CompletionRate = float64(stats.CompletedProblems) / float64(stats.TotalProblems) * 100
	}

	first := stats.RetentionProgression[domain.StageInitial]
	last := stats.RetentionProgression[domain.FinalStage]
	if first > 0 && last > 0 {
		stats.ImprovementRate = (last - first) / first * 100
	}

	stats.CompletionStatus = classifyCompletion(
		stats.CompletionRate,
		stats.RetentionProgression[domain.FinalStage],
		hasInProgress,
	)
	return stats
}

// classifyCompletion evaluates the status ladder top down; the first
// matching rung wins. hasInProgress means at least one problem has been
// attempted but not completed.
func classifyCompletion(completionRate, stage3Accuracy float64, hasInProgress bool) CompletionStatus {
	switch {
	case completionRate >= 90 && stage3Accuracy >= 80:
		return StatusMastered
	case completionRate >= 70 && stage3Accuracy >= 70:
		return StatusGood
	case completionRate >= 50 || stage3Accuracy >= 60:
		return StatusFair
	case hasInProgress:
		return StatusInProgress
	default:
		return StatusNeedsAttention
	}
}

// OverallStats summarizes a user's whole account across units.
type OverallStats struct {
	TotalUnits            int                      `json:"total_units"`
	TotalProblems         int                      `json:"total_problems"`
	CompletedProblems     int                      `json:"completed_problems"`
	CompletionRate        float64                  `json:"completion_rate"`
	AverageRetentionScore float64                  `json:"average_retention_score"`
	StatusCounts          map[CompletionStatus]int `json:"status_counts"`
	StageReached          [domain.StageCount]int   `json:"stage_reached"`
}

// Overall combines per-unit statistics and the flat record set into
// account-level totals.
func Overall(units []UnitStats, records []*domain.ProblemReviewRecord) OverallStats {
	overall := OverallStats{
		TotalUnits:   len(units),
		StatusCounts: make(map[CompletionStatus]int),
	}

	for _, unit := range units {
		overall.TotalProblems += unit.TotalProblems
		overall.CompletedProblems += unit.CompletedProblems
		overall.StatusCounts[unit.CompletionStatus]++
	}

	totalScore := 0.0
	for _, record := range records {
		totalScore += record.RetentionScore
		overall.StageReached[record.CurrentStage]++
	}
	if len(records) > 0 {
		overall.AverageRetentionScore = totalScore / float64(len(records))
	}
	if overall.TotalProblems > 0 {
		overall.CompletionRate = float64(overall.CompletedProblems) /
			float64(overall.TotalProblems) * 100
	}
	return overall
}

// UnitRank is one row of the cross-unit ranking.
type UnitRank struct {
	Rank               int              `json:"rank"`
	UnitID             string           `json:"unit_id"`
	UnitRetentionScore float64          `json:"unit_retention_score"`
	CompletionStatus   CompletionStatus `json:"completion_status"`
}

// RankUnits orders units by retention score descending. Ties keep the input
// order.
func RankUnits(units []UnitStats) []UnitRank {
	sorted := make([]UnitStats, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UnitRetentionScore > sorted[j].UnitRetentionScore
	})

	ranks := make([]UnitRank, len(sorted))
	for i, unit := range sorted {
		ranks[i] = UnitRank{
			Rank:               i + 1,
			UnitID:             unit.UnitID,
			UnitRetentionScore: unit.UnitRetentionScore,
			CompletionStatus:   unit.CompletionStatus,
		}
	}
	return ranks
}

// StageTransition reports the average accuracy change between two adjacent
// stages across units.
type StageTransition struct {
	FromStage         domain.ReviewStage `json:"from_stage"`
	ToStage           domain.ReviewStage `json:"to_stage"`
	AverageChangeRate float64            `json:"average_change_rate"`
	UnitCount         int                `json:"unit_count"`
}

// StageProgression averages the stage-to-stage accuracy change over units
// that have nonzero data at both ends of each transition.
func StageProgression(units []UnitStats) []StageTransition {
	transitions := make([]StageTransition, 0, domain.StageCount-1)
	for stage := 0; stage < domain.StageCount-1; stage++ {
		transition := StageTransition{
			FromStage: domain.ReviewStage(stage),
			ToStage:   domain.ReviewStage(stage + 1),
		}

		total := 0.0
		for _, unit := range units {
			from := unit.RetentionProgression[stage]
			to := unit.RetentionProgression[stage+1]
			if from > 0 && to > 0 {
				total += (to - from) / from * 100
				transition.UnitCount++
			}
		}
		if transition.UnitCount > 0 {
			transition.AverageChangeRate = total / float64(transition.UnitCount)
		}
		transitions = append(transitions, transition)
	}
	return transitions
}
