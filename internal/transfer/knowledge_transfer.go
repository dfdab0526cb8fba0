package transfer

import "github.com/jordibrook/marketing-api/internal/models"

type DocumentCreation struct {
	Title        string   `json:"title" validate:"required"`
	Content      string   `json:"content" validate:"required"`
	DocType      string   `json:"type" validate:"required"`
	CollectionID *int64   `json:"collectionId"`
	Tags         []string `json:"tags"`
}

type CollectionCreation struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

type DocumentFilter struct {
	CollectionID *int64
	DocType      string
}

type DocumentDetail struct {
	models.Document
	Versions []*models.DocumentVersion `json:"versions"`
}
