package repository

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/jordibrook/marketing-api/internal/models"
)

type MediaItemRepository interface {
	// Upsert writes one remote media entry, keyed by the remote id so a
	// repeated sync pass touches the existing row instead of duplicating.
	Upsert(ctx context.Context, item *models.MediaItem) error
	ListByAccountID(ctx context.Context, accountID int64) ([]*models.MediaItem, error)
}

type mediaItemRepository struct {
	db *sqlx.DB
}

func NewMediaItemRepository(db *sqlx.DB) MediaItemRepository {
	return &mediaItemRepository{db: db}
}

func (r *mediaItemRepository) Upsert(ctx context.Context, item *models.MediaItem) error {
	query := `
		INSERT INTO media_items (
			social_account_id, media_id, media_type, title,
			media_url, thumbnail_url, permalink, posted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (social_account_id, media_id) DO UPDATE SET
			media_type = $3,
			title = $4,
			media_url = $5,
			thumbnail_url = $6,
			permalink = $7,
			posted_at = $8,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query,
		item.SocialAccountID,
		item.MediaID,
		item.MediaType,
		item.Title,
		item.MediaURL,
		item.ThumbnailURL,
		item.Permalink,
		item.PostedAt,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *mediaItemRepository) ListByAccountID(ctx context.Context, accountID int64) ([]*models.MediaItem, error) {
	var items []*models.MediaItem
	query := `SELECT * FROM media_items WHERE social_account_id = $1 ORDER BY posted_at DESC`
	if err := r.db.SelectContext(ctx, &items, query, accountID); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return items, nil
}
