package review

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/domain/ebbinghaus"
	"github.com/sansu-dojo/drill-api/internal/platform/logger"
	"github.com/sansu-dojo/drill-api/internal/service"
	"github.com/sansu-dojo/drill-api/internal/store"
)

// Verify interface compliance at compile time.
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	records   store.ReviewRecordStore
	engine    ebbinghaus.Service
	recordTTL time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewReviewService creates a new ReviewService implementation. recordTTL is
// the expiration applied to every written record; 0 disables expiration.
func NewReviewService(
	records store.ReviewRecordStore,
	engine ebbinghaus.Service,
	recordTTL time.Duration,
	logger *slog.Logger,
) ReviewService {
	if records == nil {
		panic("records store cannot be nil")
	}
	if engine == nil {
		panic("engine cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		records:   records,
		engine:    engine,
		recordTTL: recordTTL,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "review_service")),
	}
}

// SubmitAttempt implements ReviewService.SubmitAttempt.
func (s *reviewServiceImpl) SubmitAttempt(
	ctx context.Context,
	req SubmitRequest,
) (*domain.ProblemReviewRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.now()
	attempt := domain.Attempt{
		Stage:           req.Stage,
		IsCorrect:       req.IsCorrect,
		Timestamp:       req.Timestamp,
		HintsUsed:       req.HintsUsed,
		DurationSeconds: req.DurationSeconds,
		Mode:            req.Mode,
	}
	if attempt.Timestamp.IsZero() {
		attempt.Timestamp = now
	}

	key := store.RecordKey{UserID: req.UserID, UnitID: req.UnitID, ProblemID: req.ProblemID}
	if err := key.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.records.Apply(ctx, key, s.recordTTL,
		func(current *domain.ProblemReviewRecord) (*domain.ProblemReviewRecord, error) {
			if current == nil {
				fresh, err := domain.NewProblemReviewRecord(
					req.UserID, req.UnitID, req.ProblemID, req.ProblemIndex, now)
				if err != nil {
					return nil, err
				}
				current = fresh
			}
			return s.engine.ApplyAttempt(current, attempt, now)
		})
	if err != nil {
		if isExpectedSubmitError(err) {
			return nil, err
		}
		log.Error("failed to submit attempt",
			slog.String("error", err.Error()),
			slog.String("user_id", req.UserID.String()),
			slog.String("unit_id", req.UnitID),
			slog.String("problem_id", req.ProblemID))
		return nil, service.NewServiceError("submit_attempt", "failed to apply attempt", err)
	}

	log.Debug("attempt recorded",
		slog.String("user_id", req.UserID.String()),
		slog.String("unit_id", req.UnitID),
		slog.String("problem_id", req.ProblemID),
		slog.String("stage", req.Stage.String()),
		slog.Bool("is_correct", req.IsCorrect),
		slog.Bool("is_completed", updated.IsCompleted))
	return updated, nil
}

// GetRecord implements ReviewService.GetRecord.
func (s *reviewServiceImpl) GetRecord(
	ctx context.Context,
	key store.RecordKey,
) (*domain.ProblemReviewRecord, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	record, err := s.records.Get(ctx, key)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrRecordNotFound
		}
		return nil, service.NewServiceError("get_record", "failed to load record", err)
	}
	return record, nil
}

// ListUnitRecords implements ReviewService.ListUnitRecords.
func (s *reviewServiceImpl) ListUnitRecords(
	ctx context.Context,
	userID uuid.UUID,
	unitID string,
) ([]*domain.ProblemReviewRecord, error) {
	if unitID == "" {
		return nil, domain.ErrEmptyUnitID
	}

	records, err := s.scan(ctx, store.RecordPrefix{UserID: userID, UnitID: unitID})
	if err != nil {
		return nil, err
	}
	sortByProblemIndex(records)
	return records, nil
}

// AllRecords implements ReviewService.AllRecords.
func (s *reviewServiceImpl) AllRecords(
	ctx context.Context,
	userID uuid.UUID,
) (map[string][]*domain.ProblemReviewRecord, error) {
	records, err := s.scan(ctx, store.RecordPrefix{UserID: userID})
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*domain.ProblemReviewRecord)
	for _, record := range records {
		grouped[record.UnitID] = append(grouped[record.UnitID], record)
	}
	for _, unit := range grouped {
		sortByProblemIndex(unit)
	}
	return grouped, nil
}

// DueProblems implements ReviewService.DueProblems.
func (s *reviewServiceImpl) DueProblems(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]*domain.ProblemReviewRecord, error) {
	records, err := s.scan(ctx, store.RecordPrefix{UserID: userID})
	if err != nil {
		return nil, err
	}

	due := make([]*domain.ProblemReviewRecord, 0, len(records))
	for _, record := range records {
		if record.IsCompleted || record.NextReviewDate == nil {
			continue
		}
		if ebbinghaus.DaysBetween(now, *record.NextReviewDate) <= 0 {
			due = append(due, record)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return ebbinghaus.OverdueDays(due[i].NextReviewDate, now) >
			ebbinghaus.OverdueDays(due[j].NextReviewDate, now)
	})
	return due, nil
}

// scan loads and validates a prefix scan, keeping a deterministic base order
// (unit, then problem index) so downstream stable sorts behave the same on
// every store implementation.
func (s *reviewServiceImpl) scan(
	ctx context.Context,
	prefix store.RecordPrefix,
) ([]*domain.ProblemReviewRecord, error) {
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

func sortByProblemIndex(records []*domain.ProblemReviewRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ProblemIndex < records[j].ProblemIndex
	})
}

// isExpectedSubmitError reports whether a submission failure is part of the
// documented contract rather than an unexpected store fault.
func isExpectedSubmitError(err error) bool {
	return errors.Is(err, domain.ErrInvalidStage) ||
		errors.Is(err, domain.ErrInvalidMode) ||
		errors.Is(err, domain.ErrMissingTimestamp) ||
		errors.Is(err, domain.ErrNegativeHints) ||
		errors.Is(err, domain.ErrNegativeDuration) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, store.ErrConflict)
}
