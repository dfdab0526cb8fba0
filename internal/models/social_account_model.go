package models

import "time"

type SocialAccount struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	Platform        string    `db:"platform" json:"platform"`
	AccountID       string    `db:"account_id" json:"account_id"`
	AccountName     string    `db:"account_name" json:"account_name"`
	AccountUsername string    `db:"account_username" json:"account_username"`
	ProfilePicture  string    `db:"profile_picture_url" json:"profile_picture"`
	AccessToken     string    `db:"access_token" json:"-"`
	RefreshToken    string    `db:"refresh_token" json:"-"`
	TokenExpiresAt  time.Time `db:"token_expires_at" json:"token_expires_at"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// MediaItem mirrors one entry of a platform's media library. Rows are
// keyed by (social_account_id, media_id) so a sync pass can upsert them
// without producing duplicates.
type MediaItem struct {
	ID              int64     `db:"id" json:"id"`
	SocialAccountID int64     `db:"social_account_id" json:"social_account_id"`
	MediaID         string    `db:"media_id" json:"media_id"`
	MediaType       string    `db:"media_type" json:"media_type"`
	Title           string    `db:"title" json:"title"`
	MediaURL        string    `db:"media_url" json:"media_url"`
	ThumbnailURL    string    `db:"thumbnail_url" json:"thumbnail_url"`
	Permalink       string    `db:"permalink" json:"permalink"`
	PostedAt        time.Time `db:"posted_at" json:"posted_at"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
