package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/repository"
	"github.com/jordibrook/marketing-api/internal/transfer"
	"github.com/jordibrook/marketing-api/pkg/validate"
)

type PostService interface {
	// Create returns the stored post plus the delay until its scheduled
	// time (zero for drafts) so the caller can enqueue publication.
	Create(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, time.Duration, error)
	Update(ctx context.Context, userID, postID int64, pc *transfer.PostCreation) (*models.Post, time.Duration, error)
	List(ctx context.Context, userID int64, filter *transfer.PostFilter) ([]*models.Post, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error)
	Remove(ctx context.Context, userID, postID int64) error
}

type postService struct {
	pr repository.PostRepository
	sa repository.SocialAccountRepository
}

func NewPostService(pr repository.PostRepository, sa repository.SocialAccountRepository) PostService {
	return &postService{
		pr: pr,
		sa: sa,
	}
}

// deriveStatus maps a send time to the post status: a future time means
// scheduled, anything else is a draft.
func deriveStatus(scheduledFor *time.Time, now time.Time) string {
	if scheduledFor != nil && scheduledFor.After(now) {
		return models.PostStatusScheduled
	}
	return models.PostStatusDraft
}

func publishDelay(scheduledFor *time.Time, now time.Time) time.Duration {
	if scheduledFor == nil {
		return 0
	}
	delay := scheduledFor.Sub(now)
	if delay < 0 {
		return 0
	}
	return delay
}

func (s *postService) Create(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, time.Duration, error) {
	if pc == nil {
		err := errors.New("post creation data is nil")
		slog.Info(err.Error())
		return nil, 0, err
	}

	if err := validate.Struct(pc); err != nil {
		return nil, 0, err
	}

	exists, err := s.sa.CheckByUserID(ctx, pc.SocialAccountID, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("error checking social account %d: %w", pc.SocialAccountID, err)
	}
	if !exists {
		return nil, 0, ErrNotFound
	}

	now := time.Now()
	post := models.Post{
		UserID:          userID,
		SocialAccountID: pc.SocialAccountID,
		Platform:        pc.Platform,
		Content:         pc.Content,
		MediaURLs:       pc.MediaURLs,
		ScheduledFor:    pc.ScheduledFor,
		Status:          deriveStatus(pc.ScheduledFor, now),
	}

	postID, err := s.pr.Create(ctx, &post)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating post: %w", err)
	}
	post.ID = postID

	if post.Status == models.PostStatusScheduled {
		return &post, publishDelay(pc.ScheduledFor, now), nil
	}
	return &post, 0, nil
}

func (s *postService) Update(ctx context.Context, userID, postID int64, pc *transfer.PostCreation) (*models.Post, time.Duration, error) {
	if pc == nil {
		err := errors.New("post update data is nil")
		slog.Info(err.Error())
		return nil, 0, err
	}

	if err := validate.Struct(pc); err != nil {
		return nil, 0, err
	}

	isOwned, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return nil, 0, err
	}
	if !isOwned {
		return nil, 0, ErrNotFound
	}

	exists, err := s.sa.CheckByUserID(ctx, pc.SocialAccountID, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("error checking social account %d: %w", pc.SocialAccountID, err)
	}
	if !exists {
		return nil, 0, ErrNotFound
	}

	current, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	if current == nil {
		return nil, 0, ErrNotFound
	}

	now := time.Now()

	// re-derive status from the new send time, except posts that already
	// went out (or failed) keep their terminal status
	status := current.Status
	if status != models.PostStatusPosted && status != models.PostStatusFailed {
		status = deriveStatus(pc.ScheduledFor, now)
	}

	post := models.Post{
		ID:              postID,
		UserID:          userID,
		SocialAccountID: pc.SocialAccountID,
		Platform:        pc.Platform,
		Content:         pc.Content,
		MediaURLs:       pc.MediaURLs,
		ScheduledFor:    pc.ScheduledFor,
		Status:          status,
	}

	if err := s.pr.Update(ctx, &post); err != nil {
		return nil, 0, fmt.Errorf("error updating post: %w", err)
	}

	if post.Status == models.PostStatusScheduled {
		return &post, publishDelay(pc.ScheduledFor, now), nil
	}
	return &post, 0, nil
}

func (s *postService) List(ctx context.Context, userID int64, filter *transfer.PostFilter) ([]*models.Post, error) {
	posts, err := s.pr.List(ctx, userID, filter)
	if err != nil {
		return nil, errors.New("error listing posts")
	}
	return posts, nil
}

func (s *postService) PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error) {
	var err error

	if userID == 0 || postID == 0 {
		err = errors.New("post id is not valid")
		slog.Info(err.Error())
		return nil, ErrNotFound
	}

	isOwned, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !isOwned {
		return nil, ErrNotFound
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, errors.New("error getting post info")
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	var err error

	if userID == 0 || postID == 0 {
		err = errors.New("post id is not valid")
		slog.Info(err.Error())
		return ErrNotFound
	}

	isOwned, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !isOwned {
		return ErrNotFound
	}

	if err = s.pr.Remove(ctx, postID); err != nil {
		return errors.New("error removing post")
	}
	return nil
}
