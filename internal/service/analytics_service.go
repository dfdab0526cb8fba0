package service

import (
	"context"
	"errors"
	"time"

	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/repository"
	"github.com/jordibrook/marketing-api/internal/transfer"
)

type AnalyticsService interface {
	List(ctx context.Context, userID int64, filter *transfer.AnalyticsFilter) ([]*models.PostAnalytics, error)
	Performance(ctx context.Context, userID int64, platform, period string) ([]*models.AccountPerformance, error)
}

type analyticsService struct {
	ar  repository.AnalyticsRepository
	loc *time.Location
}

// NewAnalyticsService builds the service with the zone used for window
// arithmetic; an unknown zone name falls back to UTC.
func NewAnalyticsService(ar repository.AnalyticsRepository, timezone string) AnalyticsService {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &analyticsService{
		ar:  ar,
		loc: loc,
	}
}

// resolvePeriod maps the period parameter to a window width. Anything
// unrecognized silently falls back to seven days.
func resolvePeriod(period string) time.Duration {
	switch period {
	case "30d":
		return 30 * 24 * time.Hour
	case "90d":
		return 90 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

func (s *analyticsService) List(ctx context.Context, userID int64, filter *transfer.AnalyticsFilter) ([]*models.PostAnalytics, error) {
	rows, err := s.ar.List(ctx, userID, filter)
	if err != nil {
		return nil, errors.New("error listing analytics")
	}
	return rows, nil
}

func (s *analyticsService) Performance(ctx context.Context, userID int64, platform, period string) ([]*models.AccountPerformance, error) {
	end := time.Now().In(s.loc)
	start := end.Add(-resolvePeriod(period))

	sums, err := s.ar.SumByAccount(ctx, userID, platform, start, end)
	if err != nil {
		return nil, errors.New("error aggregating performance")
	}
	return sums, nil
}
