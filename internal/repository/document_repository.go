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

type DocumentRepository interface {
	// CreateWithVersion inserts the document and its version-1 content
	// row in one transaction.
	CreateWithVersion(ctx context.Context, doc *models.Document, content string) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	List(ctx context.Context, userID int64, filter *transfer.DocumentFilter) ([]*models.Document, error)
	ListVersions(ctx context.Context, documentID int64) ([]*models.DocumentVersion, error)
	CheckByUserID(ctx context.Context, documentID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) CreateWithVersion(ctx context.Context, doc *models.Document, content string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	query := `
		INSERT INTO documents (user_id, collection_id, title, doc_type, tags, current_version)
		VALUES ($1, $2, $3, $4, $5, 1)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		doc.UserID, doc.CollectionID, doc.Title, doc.DocType, pq.Array([]string(doc.Tags))).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO document_versions (document_id, version, content) VALUES ($1, 1, $2)`,
		id, content)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	var doc models.Document
	err := r.db.GetContext(ctx, &doc, `SELECT * FROM documents WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context, userID int64, filter *transfer.DocumentFilter) ([]*models.Document, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("*").From("documents").Where(sb.Equal("user_id", userID))

	if filter != nil {
		if filter.CollectionID != nil {
			sb.Where(sb.Equal("collection_id", *filter.CollectionID))
		}
		if filter.DocType != "" {
			sb.Where(sb.Equal("doc_type", filter.DocType))
		}
	}
	sb.OrderBy("updated_at").Desc()

	query, args := sb.Build()

	var docs []*models.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) ListVersions(ctx context.Context, documentID int64) ([]*models.DocumentVersion, error) {
	var versions []*models.DocumentVersion
	query := `SELECT * FROM document_versions WHERE document_id = $1 ORDER BY version`
	if err := r.db.SelectContext(ctx, &versions, query, documentID); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return versions, nil
}

func (r *documentRepository) CheckByUserID(ctx context.Context, documentID, userID int64) (bool, error) {
	query := `SELECT 1 FROM documents WHERE id = $1 AND user_id = $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, documentID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *documentRepository) Remove(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
