package models

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Document struct {
	ID             int64          `db:"id" json:"id"`
	UserID         int64          `db:"user_id" json:"user_id"`
	CollectionID   sql.NullInt64  `db:"collection_id" json:"collection_id"`
	Title          string         `db:"title" json:"title"`
	DocType        string         `db:"doc_type" json:"doc_type"`
	Tags           pq.StringArray `db:"tags" json:"tags"`
	CurrentVersion int            `db:"current_version" json:"current_version"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

type DocumentVersion struct {
	ID         int64     `db:"id" json:"id"`
	DocumentID int64     `db:"document_id" json:"document_id"`
	Version    int       `db:"version" json:"version"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type Collection struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	IsPublic    bool      `db:"is_public" json:"is_public"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
