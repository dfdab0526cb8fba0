package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/jordibrook/marketing-api/internal/models"
)

type CollectionRepository interface {
	Create(ctx context.Context, col *models.Collection) (int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Collection, error)
	CheckByUserID(ctx context.Context, collectionID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type collectionRepository struct {
	db *sqlx.DB
}

func NewCollectionRepository(db *sqlx.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, col *models.Collection) (int64, error) {
	query := `
		INSERT INTO collections (user_id, name, description, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, col.UserID, col.Name, col.Description, col.IsPublic).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *collectionRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Collection, error) {
	var cols []*models.Collection
	query := `SELECT * FROM collections WHERE user_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &cols, query, userID); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return cols, nil
}

func (r *collectionRepository) CheckByUserID(ctx context.Context, collectionID, userID int64) (bool, error) {
	query := `SELECT 1 FROM collections WHERE id = $1 AND user_id = $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, collectionID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *collectionRepository) Remove(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
