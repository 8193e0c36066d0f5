package analytics

import "fmt"

// Recommendation is one advisory entry for the user. Lower Priority values
// come first.
type Recommendation struct {
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	UnitID      string         `json:"unit_id,omitempty"`
	Priority    int            `json:"priority"`
	Data        map[string]any `json:"data,omitempty"`
}

// Recommendation priorities, highest first.
const (
	priorityOverdue  = 1
	priorityToday    = 2
	priorityUnitFlag = 3
	priorityContinue = 4
)

// overdueSampleSize caps how many overdue problems are attached to the
// overdue recommendation.
const overdueSampleSize = 5

// improvementRateFloor is the improvement rate below which a "fair" unit gets
// an improvement recommendation.
const improvementRateFloor = 10.0

// PlanRecommendations turns the due queue and unit statistics into an
// ordered action list. It is advisory only: no side effects, fully derived
// from its inputs. When nothing needs attention it returns a single
// "continue" entry.
func PlanRecommendations(queue DueQueue, units []UnitStats) []Recommendation {
	var recs []Recommendation

	overdueCount := 0
	var overdueSample []map[string]any
	for _, entry := range queue.Today {
		if entry.OverdueDays > 0 {
			overdueCount++
			if len(overdueSample) < overdueSampleSize {
				overdueSample = append(overdueSample, map[string]any{
					"unit_id":       entry.UnitID,
					"problem_id":    entry.ProblemID,
					"overdue_days":  entry.OverdueDays,
					"current_stage": entry.CurrentStage,
				})
			}
		}
	}

	if overdueCount > 0 {
		recs = append(recs, Recommendation{
			Type:        "overdue",
			Title:       "Overdue reviews waiting",
			Description: fmt.Sprintf("%d problems are past their review date. Review them first.", overdueCount),
			Priority:    priorityOverdue,
			Data:        map[string]any{"count": overdueCount, "problems": overdueSample},
		})
	}

	if queue.TotalDue > overdueCount {
		recs = append(recs, Recommendation{
			Type:        "today",
			Title:       "Reviews scheduled for today",
			Description: fmt.Sprintf("%d problems are scheduled for review today.", queue.TotalDue-overdueCount),
			Priority:    priorityToday,
			Data:        map[string]any{"count": queue.TotalDue - overdueCount},
		})
	}

	for _, unit := range units {
		switch {
		case unit.CompletionStatus == StatusNeedsAttention:
			recs = append(recs, Recommendation{
				Type:        "attention",
				Title:       fmt.Sprintf("Unit %s has stalled", unit.UnitID),
				Description: "This unit has problems with no recent progress. Schedule regular practice.",
				UnitID:      unit.UnitID,
				Priority:    priorityUnitFlag,
			})
		case unit.CompletionStatus == StatusFair && unit.ImprovementRate < improvementRateFloor:
			recs = append(recs, Recommendation{
				Type:        "improvement",
				Title:       fmt.Sprintf("Unit %s retention is not improving", unit.UnitID),
				Description: "Accuracy is not rising across review stages. Revisit how this unit is practiced.",
				UnitID:      unit.UnitID,
				Priority:    priorityUnitFlag,
			})
		}
	}

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Type:        "continue",
			Title:       "All caught up",
			Description: "No reviews are due. Keep working through new problems.",
			Priority:    priorityContinue,
		})
	}
	return recs
}
