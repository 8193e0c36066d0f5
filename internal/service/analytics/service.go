package analytics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/platform/logger"
	"github.com/sansu-dojo/drill-api/internal/service"
	"github.com/sansu-dojo/drill-api/internal/store"
)

// UnitReport bundles the per-unit statistics with the cross-unit summaries.
type UnitReport struct {
	Units            []UnitStats       `json:"units"`
	Overall          OverallStats      `json:"overall"`
	Rankings         []UnitRank        `json:"rankings"`
	StageProgression []StageTransition `json:"stage_progression"`
}

// AnalyticsService derives reports from a user's review records. All methods
// are read-only; the time reference is always passed in by the caller.
type AnalyticsService interface {
	// DueQueue builds the bucketed due queue, optionally scoped to one unit.
	DueQueue(ctx context.Context, userID uuid.UUID, unitID string, now time.Time) (*DueQueue, error)

	// UnitReport aggregates per-unit statistics, account totals, rankings
	// and stage progression, optionally scoped to one unit.
	UnitReport(ctx context.Context, userID uuid.UUID, unitID string) (*UnitReport, error)

	// Insights builds the retention insight report, optionally scoped to
	// one unit.
	Insights(ctx context.Context, userID uuid.UUID, unitID string, now time.Time) (*Insights, error)

	// Recommendations plans the prioritized action list from the due queue
	// and unit statistics.
	Recommendations(ctx context.Context, userID uuid.UUID, now time.Time) ([]Recommendation, error)

	// WeakProblems lists the user's lowest-accuracy problems.
	WeakProblems(ctx context.Context, userID uuid.UUID, limit int) (*WeakProblemsReport, error)
}

// Verify interface compliance at compile time.
var _ AnalyticsService = (*analyticsServiceImpl)(nil)

type analyticsServiceImpl struct {
	records store.ReviewRecordStore
	logger  *slog.Logger
}

// NewAnalyticsService creates a new AnalyticsService implementation.
func NewAnalyticsService(records store.ReviewRecordStore, logger *slog.Logger) AnalyticsService {
	if records == nil {
		panic("records store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &analyticsServiceImpl{
		records: records,
		logger:  logger.With(slog.String("component", "analytics_service")),
	}
}

func (s *analyticsServiceImpl) DueQueue(
	ctx context.Context,
	userID uuid.UUID,
	unitID string,
	now time.Time,
) (*DueQueue, error) {
	records, err := s.scan(ctx, userID, unitID)
	if err != nil {
		return nil, err
	}
	queue := BuildDueQueue(records, now)
	return &queue, nil
}

func (s *analyticsServiceImpl) UnitReport(
	ctx context.Context,
	userID uuid.UUID,
	unitID string,
) (*UnitReport, error) {
	records, err := s.scan(ctx, userID, unitID)
	if err != nil {
		return nil, err
	}
	return buildUnitReport(records), nil
}

// buildUnitReport groups records by unit and derives the full report.
func buildUnitReport(records []*domain.ProblemReviewRecord) *UnitReport {
	byUnit := make(map[string][]*domain.ProblemReviewRecord)
	unitIDs := make([]string, 0)
	for _, record := range records {
		if _, seen := byUnit[record.UnitID]; !seen {
			unitIDs = append(unitIDs, record.UnitID)
		}
		byUnit[record.UnitID] = append(byUnit[record.UnitID], record)
	}
	sort.Strings(unitIDs)

	units := make([]UnitStats, 0, len(unitIDs))
	for _, id := range unitIDs {
		units = append(units, AggregateUnit(id, byUnit[id]))
	}

	return &UnitReport{
		Units:            units,
		Overall:          Overall(units, records),
		Rankings:         RankUnits(units),
		StageProgression: StageProgression(units),
	}
}

func (s *analyticsServiceImpl) Insights(
	ctx context.Context,
	userID uuid.UUID,
	unitID string,
	now time.Time,
) (*Insights, error) {
	records, err := s.scan(ctx, userID, unitID)
	if err != nil {
		return nil, err
	}
	insights := BuildInsights(records, now)
	return &insights, nil
}

func (s *analyticsServiceImpl) Recommendations(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]Recommendation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.scan(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	queue := BuildDueQueue(records, now)
	recs := PlanRecommendations(queue, buildUnitReport(records).Units)
	log.Debug("planned recommendations",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(recs)))
	return recs, nil
}

func (s *analyticsServiceImpl) WeakProblems(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) (*WeakProblemsReport, error) {
	records, err := s.scan(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	report := WeakestProblems(records, limit)
	return &report, nil
}

// scan loads a user's records in a deterministic order (unit, problem index,
// problem ID) so every report's stable sorts produce the same output on any
// store implementation.
func (s *analyticsServiceImpl) scan(
	ctx context.Context,
	userID uuid.UUID,
	unitID string,
) ([]*domain.ProblemReviewRecord, error) {
	prefix := store.RecordPrefix{UserID: userID, UnitID: unitID}
	if err := prefix.Validate(); err != nil {
		return nil, err
	}

	records, err := s.records.Scan(ctx, prefix)
	if err != nil {
		return nil, service.NewServiceError("scan_records", "failed to scan records", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].UnitID != records[j].UnitID {
			return records[i].UnitID < records[j].UnitID
		}
		if records[i].ProblemIndex != records[j].ProblemIndex {
			return records[i].ProblemIndex < records[j].ProblemIndex
		}
		return records[i].ProblemID < records[j].ProblemID
	})
	return records, nil
}
