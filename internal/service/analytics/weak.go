package analytics

import (
	"sort"

	"github.com/sansu-dojo/drill-api/internal/domain"
)

// DefaultWeakProblemLimit is used when a caller does not cap the weak-problem
// list.
const DefaultWeakProblemLimit = 5

// WeakProblem is one low-accuracy problem in the weakness report.
type WeakProblem struct {
	UnitID        string  `json:"unit_id"`
	ProblemID     string  `json:"problem_id"`
	ProblemIndex  int     `json:"problem_index"`
	TotalAttempts int     `json:"total_attempts"`
	Accuracy      float64 `json:"accuracy"`
}

// WeakProblemsReport lists the user's weakest problems plus the average
// accuracy of the returned set.
type WeakProblemsReport struct {
	Problems        []WeakProblem `json:"problems"`
	AverageAccuracy float64       `json:"average_accuracy"`
}

// WeakestProblems picks the limit problems with the lowest accuracy over all
// their attempts. Unattempted records are skipped. Ordering is accuracy
// ascending; ties keep the input order, so equal problems rank the same way
// on every call.
func WeakestProblems(records []*domain.ProblemReviewRecord, limit int) WeakProblemsReport {
	if limit <= 0 {
		limit = DefaultWeakProblemLimit
	}

	problems := make([]WeakProblem, 0, len(records))
	for _, record := range records {
		if len(record.Attempts) == 0 {
			continue
		}
		correct := 0
		for _, attempt := range record.Attempts {
			if attempt.IsCorrect {
				correct++
			}
		}
		problems = append(problems, WeakProblem{
			UnitID:        record.UnitID,
			ProblemID:     record.ProblemID,
			ProblemIndex:  record.ProblemIndex,
			TotalAttempts: len(record.Attempts),
			Accuracy:      float64(correct) / float64(len(record.Attempts)) * 100,
		})
	}

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Accuracy < problems[j].Accuracy
	})
	if len(problems) > limit {
		problems = problems[:limit]
	}

	report := WeakProblemsReport{Problems: problems}
	if len(problems) > 0 {
		total := 0.0
		for _, p := range problems {
			total += p.Accuracy
		}
		report.AverageAccuracy = total / float64(len(problems))
	}
	return report
}
