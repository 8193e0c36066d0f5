package analytics

import (
	"sort"
	"time"

	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/domain/ebbinghaus"
)

// DueEntry is one scheduled review in the due queue.
type DueEntry struct {
	UnitID          string             `json:"unit_id"`
	ProblemID       string             `json:"problem_id"`
	ProblemIndex    int                `json:"problem_index"`
	CurrentStage    domain.ReviewStage `json:"current_stage"`
	NextReviewDate  time.Time          `json:"next_review_date"`
	DaysUntilReview int                `json:"days_until_review"`
	OverdueDays     int                `json:"overdue_days"`
	RetentionScore  float64            `json:"retention_score"`
	Urgency         float64            `json:"urgency"`
}

// DueQueue partitions a user's scheduled reviews into time buckets. Records
// due now (including overdue) land in Today; each bucket is sorted by urgency
// descending with ties kept in input order.
type DueQueue struct {
	Today    []DueEntry `json:"today"`
	Tomorrow []DueEntry `json:"tomorrow"`
	ThisWeek []DueEntry `json:"this_week"`
	NextWeek []DueEntry `json:"next_week"`
	Later    []DueEntry `json:"later"`

	TotalDue       int `json:"total_due"`       // entries in Today
	TotalScheduled int `json:"total_scheduled"` // entries across all buckets
}

// BuildDueQueue partitions records by days until their next review:
// ≤0 today, ==1 tomorrow, ≤7 this week, ≤14 next week, else later. Completed
// and unscheduled records are skipped.
func BuildDueQueue(records []*domain.ProblemReviewRecord, now time.Time) DueQueue {
	var queue DueQueue

	for _, record := range records {
		if record.IsCompleted || record.NextReviewDate == nil {
			continue
		}

		days := ebbinghaus.DaysBetween(now, *record.NextReviewDate)
		entry := DueEntry{
			UnitID:          record.UnitID,
			ProblemID:       record.ProblemID,
			ProblemIndex:    record.ProblemIndex,
			CurrentStage:    record.CurrentStage,
			NextReviewDate:  *record.NextReviewDate,
			DaysUntilReview: days,
			RetentionScore:  record.RetentionScore,
		}
		if days < 0 {
			entry.OverdueDays = -days
		}
		entry.Urgency = urgency(entry.OverdueDays, record.RetentionScore)

		switch {
		case days <= 0:
			queue.Today = append(queue.Today, entry)
		case days == 1:
			queue.Tomorrow = append(queue.Tomorrow, entry)
		case days <= 7:
			queue.ThisWeek = append(queue.ThisWeek, entry)
		case days <= 14:
			queue.NextWeek = append(queue.NextWeek, entry)
		default:
			queue.Later = append(queue.Later, entry)
		}
	}

	for _, bucket := range [][]DueEntry{
		queue.Today, queue.Tomorrow, queue.ThisWeek, queue.NextWeek, queue.Later,
	} {
		sortByUrgency(bucket)
	}

	queue.TotalDue = len(queue.Today)
	queue.TotalScheduled = len(queue.Today) + len(queue.Tomorrow) +
		len(queue.ThisWeek) + len(queue.NextWeek) + len(queue.Later)
	return queue
}

// urgency ranks an entry by how overdue it is and how weakly it is retained,
// clamped to [0, 100].
func urgency(overdueDays int, retentionScore float64) float64 {
	u := float64(overdueDays)*10 + (100-retentionScore)*0.5
	if u < 0 {
		return 0
	}
	if u > 100 {
		return 100
	}
	return u
}

// sortByUrgency orders a bucket by urgency descending. The sort is stable:
// equal urgencies keep their input order, which is part of the queue's
// contract.
func sortByUrgency(bucket []DueEntry) {
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].Urgency > bucket[j].Urgency
	})
}
