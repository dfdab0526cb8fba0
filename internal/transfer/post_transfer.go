package transfer

import "time"

type PostCreation struct {
	Content         string     `json:"content" validate:"required"`
	Platform        string     `json:"platform" validate:"required"`
	SocialAccountID int64      `json:"socialAccountId" validate:"required,gt=0"`
	ScheduledFor    *time.Time `json:"scheduledFor"`
	MediaURLs       []string   `json:"mediaUrls" validate:"dive,url"`
}

// PostFilter holds the optional list constraints. Zero values impose no
// constraint; supplied ones are ANDed together.
type PostFilter struct {
	Status   string
	Platform string
	From     *time.Time
	To       *time.Time
}
