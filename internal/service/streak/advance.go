// Package streak tracks consecutive study days. A calendar day joins the
// streak once the user solves the configured daily goal of problems; the
// streak grows when the previous counted day was yesterday and resets on any
// longer gap.
package streak

import (
	"time"

	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/domain/ebbinghaus"
)

// DefaultDailyGoal is the number of problems a day must reach to count
// toward the streak.
const DefaultDailyGoal = 3

// advance computes the streak state after recording solved problems at now.
// It is pure: the input is never modified, which makes it safe to retry
// inside the store's atomic read-modify-write.
func advance(current *domain.StudyStreak, problems, dailyGoal int, now time.Time) *domain.StudyStreak {
	next := current.Clone()

	if sameDay(next.LastActivityDate, now) {
		next.TodayProblems += problems
	} else {
		next.TodayProblems = problems
	}
	next.LastActivityDate = now
	next.TotalProblems += problems

	if next.TodayProblems < dailyGoal || sameDay(next.LastStudyDate, now) {
		return next
	}

	// Today reached the goal for the first time.
	next.TotalStudyDays++
	switch {
	case next.LastStudyDate.IsZero():
		next.CurrentStreak = 1
		next.FirstStudyDate = now
	case ebbinghaus.DaysBetween(next.LastStudyDate, now) == 1:
		next.CurrentStreak++
	default:
		next.CurrentStreak = 1
	}
	if next.CurrentStreak > next.MaxStreak {
		next.MaxStreak = next.CurrentStreak
	}
	next.LastStudyDate = now

	return next
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	return ebbinghaus.DaysBetween(a, b) == 0
}
