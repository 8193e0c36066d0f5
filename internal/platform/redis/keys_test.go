package redis

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sansu-dojo/drill-api/internal/store"
)

func TestRecordKey_RendersAllComponents(t *testing.T) {
	t.Parallel()

	userID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	key := store.RecordKey{UserID: userID, UnitID: "grade3-multiplication", ProblemID: "p-07"}

	assert.Equal(t,
		"drill:review:11111111-2222-3333-4444-555555555555:grade3-multiplication:p-07",
		recordKey(key))
}

func TestRecordScanPattern(t *testing.T) {
	t.Parallel()

	userID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	assert.Equal(t,
		"drill:review:11111111-2222-3333-4444-555555555555:*",
		recordScanPattern(store.RecordPrefix{UserID: userID}))
	assert.Equal(t,
		"drill:review:11111111-2222-3333-4444-555555555555:grade3-multiplication:*",
		recordScanPattern(store.RecordPrefix{UserID: userID, UnitID: "grade3-multiplication"}))
}

func TestDedupeSorted(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, dedupeSorted([]string{"a", "a", "b", "c", "c"}))
	assert.Empty(t, dedupeSorted(nil))
}
