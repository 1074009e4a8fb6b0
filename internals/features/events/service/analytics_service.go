package service

import (
	"context"

	"campusevents_backend/internals/features/events/dto"
	"campusevents_backend/internals/features/events/store"
	helper "campusevents_backend/internals/helpers"
)

const defaultReportLimit = 10

// AnalyticsService: read-only rollups, computed on demand. Either the full
// rollup is produced or the caller gets Internal; no partial results.
type AnalyticsService struct {
	store store.EventStore
}

func NewAnalyticsService(st store.EventStore) *AnalyticsService {
	return &AnalyticsService{store: st}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultReportLimit
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func (s *AnalyticsService) PopularityReport(ctx context.Context, limit int) ([]dto.EventPopularityRow, error) {
	rows, err := s.store.PopularityReport(ctx, normalizeLimit(limit))
	if err != nil {
		return nil, helper.ErrInternal("popularity report failed", err)
	}
	return rows, nil
}

func (s *AnalyticsService) TopParticipants(ctx context.Context, limit int) ([]dto.ParticipantRow, error) {
	rows, err := s.store.TopParticipants(ctx, normalizeLimit(limit))
	if err != nil {
		return nil, helper.ErrInternal("top participants report failed", err)
	}
	return rows, nil
}

func (s *AnalyticsService) FeedbackReport(ctx context.Context, limit int) ([]dto.EventFeedbackRow, error) {
	rows, err := s.store.FeedbackReport(ctx, normalizeLimit(limit))
	if err != nil {
		return nil, helper.ErrInternal("feedback report failed", err)
	}
	return rows, nil
}
