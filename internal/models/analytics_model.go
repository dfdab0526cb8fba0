package models

import "time"

type PostAnalytics struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	PostID          int64     `db:"post_id" json:"post_id"`
	SocialAccountID int64     `db:"social_account_id" json:"social_account_id"`
	Platform        string    `db:"platform" json:"platform"`
	Impressions     int64     `db:"impressions" json:"impressions"`
	Reach           int64     `db:"reach" json:"reach"`
	Likes           int64     `db:"likes" json:"likes"`
	Comments        int64     `db:"comments" json:"comments"`
	Shares          int64     `db:"shares" json:"shares"`
	Saves           int64     `db:"saves" json:"saves"`
	Clicks          int64     `db:"clicks" json:"clicks"`
	RecordedAt      time.Time `db:"recorded_at" json:"recorded_at"`
}

// AccountPerformance holds the summed metrics for one social account
// over a query window.
type AccountPerformance struct {
	SocialAccountID int64  `db:"social_account_id" json:"social_account_id"`
	Platform        string `db:"platform" json:"platform"`
	Impressions     int64  `db:"impressions" json:"impressions"`
	Reach           int64  `db:"reach" json:"reach"`
	Likes           int64  `db:"likes" json:"likes"`
	Comments        int64  `db:"comments" json:"comments"`
	Shares          int64  `db:"shares" json:"shares"`
	Saves           int64  `db:"saves" json:"saves"`
	Clicks          int64  `db:"clicks" json:"clicks"`
}
