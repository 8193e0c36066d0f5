package store

import (
	"github.com/google/uuid"

	"github.com/sansu-dojo/drill-api/internal/domain"
)

// RecordKey identifies one user's review record for one problem. Keys are
// structured rather than string-concatenated so that no store or caller ever
// parses fields back out of a key.
type RecordKey struct {
	UserID    uuid.UUID
	UnitID    string
	ProblemID string
}

// KeyFor builds the record key for a review record.
func KeyFor(record *domain.ProblemReviewRecord) RecordKey {
	return RecordKey{
		UserID:    record.UserID,
		UnitID:    record.UnitID,
		ProblemID: record.ProblemID,
	}
}

// Validate checks that every key component is present.
func (k RecordKey) Validate() error {
	if k.UserID == uuid.Nil {
		return domain.ErrEmptyUserID
	}
	if k.UnitID == "" {
		return domain.ErrEmptyUnitID
	}
	if k.ProblemID == "" {
		return domain.ErrEmptyProblemID
	}
	return nil
}

// RecordPrefix scopes a scan to one user's records, optionally narrowed to a
// single unit.
type RecordPrefix struct {
	UserID uuid.UUID
	UnitID string // empty matches every unit
}

// Validate checks that the prefix names a user.
func (p RecordPrefix) Validate() error {
	if p.UserID == uuid.Nil {
		return domain.ErrEmptyUserID
	}
	return nil
}

// Matches reports whether a key falls under the prefix.
func (p RecordPrefix) Matches(k RecordKey) bool {
	if k.UserID != p.UserID {
		return false
	}
	return p.UnitID == "" || p.UnitID == k.UnitID
}
