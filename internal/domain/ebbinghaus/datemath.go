package ebbinghaus

import "time"

// DaysBetween returns the number of whole calendar days from a to b. The
// comparison uses calendar dates rather than wall-clock deltas, so two
// instants on the same calendar day yield 0 regardless of the hours between
// them. The result is negative when b falls on an earlier calendar day.
func DaysBetween(a, b time.Time) int {
	aDay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDay := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bDay.Sub(aDay).Hours() / 24)
}

// IsDue reports whether a scheduled review has come due. A nil schedule is
// never due.
func IsDue(nextReviewDate *time.Time, now time.Time) bool {
	return nextReviewDate != nil && !nextReviewDate.After(now)
}

// OverdueDays returns how many whole calendar days a scheduled review is past
// due, and 0 when the review is not due or not scheduled.
func OverdueDays(nextReviewDate *time.Time, now time.Time) int {
	if !IsDue(nextReviewDate, now) {
		return 0
	}
	days := DaysBetween(*nextReviewDate, now)
	if days < 0 {
		return 0
	}
	return days
}
