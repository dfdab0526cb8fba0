package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/transfer"
)

type AnalyticsRepository interface {
	List(ctx context.Context, userID int64, filter *transfer.AnalyticsFilter) ([]*models.PostAnalytics, error)
	// SumByAccount sums the seven metrics grouped by social account over
	// [from, to], scoped to the user and optionally one platform.
	SumByAccount(ctx context.Context, userID int64, platform string, from, to time.Time) ([]*models.AccountPerformance, error)
}

type analyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) List(ctx context.Context, userID int64, filter *transfer.AnalyticsFilter) ([]*models.PostAnalytics, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("*").From("post_analytics").Where(sb.Equal("user_id", userID))

	if filter != nil {
		if filter.Platform != "" {
			sb.Where(sb.Equal("platform", filter.Platform))
		}
		if filter.From != nil {
			sb.Where(sb.GreaterEqualThan("recorded_at", *filter.From))
		}
		if filter.To != nil {
			sb.Where(sb.LessEqualThan("recorded_at", *filter.To))
		}
	}
	sb.OrderBy("recorded_at").Desc()

	query, args := sb.Build()

	var rows []*models.PostAnalytics
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) SumByAccount(ctx context.Context, userID int64, platform string, from, to time.Time) ([]*models.AccountPerformance, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"social_account_id",
		"platform",
		"COALESCE(SUM(impressions), 0) AS impressions",
		"COALESCE(SUM(reach), 0) AS reach",
		"COALESCE(SUM(likes), 0) AS likes",
		"COALESCE(SUM(comments), 0) AS comments",
		"COALESCE(SUM(shares), 0) AS shares",
		"COALESCE(SUM(saves), 0) AS saves",
		"COALESCE(SUM(clicks), 0) AS clicks",
	).From("post_analytics").
		Where(sb.Equal("user_id", userID)).
		Where(sb.GreaterEqualThan("recorded_at", from)).
		Where(sb.LessEqualThan("recorded_at", to)).
		GroupBy("social_account_id", "platform")

	if platform != "" {
		sb.Where(sb.Equal("platform", platform))
	}

	query, args := sb.Build()

	var sums []*models.AccountPerformance
	if err := r.db.SelectContext(ctx, &sums, query, args...); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return sums, nil
}
