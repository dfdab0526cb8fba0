package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/repository"
	"github.com/jordibrook/marketing-api/internal/transfer"
	"github.com/jordibrook/marketing-api/pkg/validate"
)

type KnowledgeService interface {
	CreateDocument(ctx context.Context, userID int64, dc *transfer.DocumentCreation) (int64, error)
	ListDocuments(ctx context.Context, userID int64, filter *transfer.DocumentFilter) ([]*models.Document, error)
	DocumentInfo(ctx context.Context, userID, documentID int64) (*transfer.DocumentDetail, error)
	DeleteDocument(ctx context.Context, userID, documentID int64) error
	CreateCollection(ctx context.Context, userID int64, cc *transfer.CollectionCreation) (int64, error)
	ListCollections(ctx context.Context, userID int64) ([]*models.Collection, error)
	DeleteCollection(ctx context.Context, userID, collectionID int64) error
}

type knowledgeService struct {
	dr repository.DocumentRepository
	cr repository.CollectionRepository
}

func NewKnowledgeService(dr repository.DocumentRepository, cr repository.CollectionRepository) KnowledgeService {
	return &knowledgeService{
		dr: dr,
		cr: cr,
	}
}

func (k *knowledgeService) CreateDocument(ctx context.Context, userID int64, dc *transfer.DocumentCreation) (int64, error) {
	if userID == 0 {
		return 0, errors.New("user not found")
	}
	if err := validate.Struct(dc); err != nil {
		return 0, err
	}

	doc := &models.Document{
		UserID:  userID,
		Title:   dc.Title,
		DocType: dc.DocType,
		Tags:    dc.Tags,
	}

	// A document may only be filed into a collection its owner created.
	if dc.CollectionID != nil {
		isOwned, err := k.cr.CheckByUserID(ctx, *dc.CollectionID, userID)
		if err != nil {
			return 0, err
		}
		if !isOwned {
			return 0, ErrNotFound
		}
		doc.CollectionID = sql.NullInt64{Int64: *dc.CollectionID, Valid: true}
	}

	id, err := k.dr.CreateWithVersion(ctx, doc, dc.Content)
	if err != nil {
		slog.Error("failed to create document", slog.Any("error", err))
		return 0, errors.New("failed to create document")
	}
	return id, nil
}

func (k *knowledgeService) ListDocuments(ctx context.Context, userID int64, filter *transfer.DocumentFilter) ([]*models.Document, error) {
	if userID == 0 {
		return nil, errors.New("user not found")
	}
	return k.dr.List(ctx, userID, filter)
}

func (k *knowledgeService) DocumentInfo(ctx context.Context, userID, documentID int64) (*transfer.DocumentDetail, error) {
	isOwned, err := k.dr.CheckByUserID(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}
	if !isOwned {
		return nil, ErrNotFound
	}

	doc, err := k.dr.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	versions, err := k.dr.ListVersions(ctx, documentID)
	if err != nil {
		return nil, err
	}

	return &transfer.DocumentDetail{
		Document: *doc,
		Versions: versions,
	}, nil
}

func (k *knowledgeService) DeleteDocument(ctx context.Context, userID, documentID int64) error {
	isOwned, err := k.dr.CheckByUserID(ctx, documentID, userID)
	if err != nil {
		return err
	}
	if !isOwned {
		return ErrNotFound
	}
	return k.dr.Remove(ctx, documentID)
}

func (k *knowledgeService) CreateCollection(ctx context.Context, userID int64, cc *transfer.CollectionCreation) (int64, error) {
	if userID == 0 {
		return 0, errors.New("user not found")
	}
	if err := validate.Struct(cc); err != nil {
		return 0, err
	}

	return k.cr.Create(ctx, &models.Collection{
		UserID:      userID,
		Name:        cc.Name,
		Description: cc.Description,
		IsPublic:    cc.IsPublic,
	})
}

func (k *knowledgeService) ListCollections(ctx context.Context, userID int64) ([]*models.Collection, error) {
	if userID == 0 {
		return nil, errors.New("user not found")
	}
	return k.cr.ListByUserID(ctx, userID)
}

func (k *knowledgeService) DeleteCollection(ctx context.Context, userID, collectionID int64) error {
	isOwned, err := k.cr.CheckByUserID(ctx, collectionID, userID)
	if err != nil {
		return err
	}
	if !isOwned {
		return ErrNotFound
	}
	return k.cr.Remove(ctx, collectionID)
}
