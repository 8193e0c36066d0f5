package redis

import (
	"fmt"

	"github.com/sansu-dojo/drill-api/internal/store"

	"github.com/google/uuid"
)

const (
	recordKeyPrefix = "drill:review"
	streakKeyPrefix = "drill:streak"
)

// recordKey renders a structured record key as a Redis key. Unit and problem
// identifiers are caller-controlled slugs without colons, so the rendered key
// round-trips cleanly.
func recordKey(k store.RecordKey) string {
	return fmt.Sprintf("%s:%s:%s:%s", recordKeyPrefix, k.UserID, k.UnitID, k.ProblemID)
}

// recordScanPattern builds the MATCH pattern for a prefix scan.
func recordScanPattern(p store.RecordPrefix) string {
	if p.UnitID == "" {
		return fmt.Sprintf("%s:%s:*", recordKeyPrefix, p.UserID)
	}
	return fmt.Sprintf("%s:%s:%s:*", recordKeyPrefix, p.UserID, p.UnitID)
}

func streakKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", streakKeyPrefix, userID)
}
