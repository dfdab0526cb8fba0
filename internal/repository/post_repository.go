package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/transfer"
	"github.com/lib/pq"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, userID int64, filter *transfer.PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	UpdateStatus(ctx context.Context, status string, postID int64) error
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (user_id, social_account_id, platform, content, media_urls, scheduled_for, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		post.UserID, post.SocialAccountID, post.Platform, post.Content,
		pq.Array([]string(post.MediaURLs)), post.ScheduledFor, post.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, `SELECT * FROM posts WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &post, nil
}

// buildPostListQuery applies the requester filter conjunctively. The
// user_id predicate is always present and cannot be overridden by the
// filter.
func buildPostListQuery(userID int64, filter *transfer.PostFilter) (string, []interface{}) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("*").From("posts").Where(sb.Equal("user_id", userID))

	if filter != nil {
		if filter.Status != "" {
			sb.Where(sb.Equal("status", filter.Status))
		}
		if filter.Platform != "" {
			sb.Where(sb.Equal("platform", filter.Platform))
		}
		if filter.From != nil {
			sb.Where(sb.GreaterEqualThan("created_at", *filter.From))
		}
		if filter.To != nil {
			sb.Where(sb.LessEqualThan("created_at", *filter.To))
		}
	}
	sb.OrderBy("created_at").Desc()

	return sb.Build()
}

func (r *postRepository) List(ctx context.Context, userID int64, filter *transfer.PostFilter) ([]*models.Post, error) {
	query, args := buildPostListQuery(userID, filter)

	var posts []*models.Post
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET social_account_id = $1,
			platform = $2,
			content = $3,
			media_urls = $4,
			scheduled_for = $5,
			status = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		post.SocialAccountID, post.Platform, post.Content,
		pq.Array([]string(post.MediaURLs)), post.ScheduledFor, post.Status, post.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := `SELECT 1 FROM posts WHERE id = $1 AND user_id = $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, status string, postID int64) error {
	query := `UPDATE posts SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, status, postID); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
