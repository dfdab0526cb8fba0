package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jordibrook/marketing-api/internal/models"
)

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}
	return q.PublishPost(ctx, payload.PostID)
}

// PublishPost pushes a scheduled post to its platform and records the
// outcome on the post row. Posts that were deleted, already published,
// or moved back to draft since enqueue are skipped without error.
func (q *Queue) PublishPost(ctx context.Context, postID int64) error {
	post, err := q.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		slog.Info("post no longer exists, skipping publish", slog.Int64("post_id", postID))
		return nil
	}
	if post.Status != models.PostStatusScheduled {
		slog.Info("post is not scheduled anymore, skipping publish",
			slog.Int64("post_id", postID), slog.String("status", post.Status))
		return nil
	}

	account, err := q.ac.GetByID(ctx, post.SocialAccountID)
	if err != nil {
		return err
	}
	if account == nil {
		q.markFailed(ctx, postID)
		return fmt.Errorf("social account %d for post %d no longer exists", post.SocialAccountID, postID)
	}

	switch account.Platform {
	case "instagram":
		err = q.ig.PublishPost(ctx, post, account)
	default:
		err = errors.New("unsupported platform: " + account.Platform)
	}

	if err != nil {
		slog.Error("failed to publish post",
			slog.Int64("post_id", postID),
			slog.String("platform", account.Platform),
			slog.Any("error", err))
		q.markFailed(ctx, postID)
		return err
	}

	if err := q.pr.UpdateStatus(ctx, models.PostStatusPosted, postID); err != nil {
		slog.Error("failed to mark post as posted", slog.Int64("post_id", postID), slog.Any("error", err))
		return err
	}
	return nil
}

func (q *Queue) markFailed(ctx context.Context, postID int64) {
	if err := q.pr.UpdateStatus(ctx, models.PostStatusFailed, postID); err != nil {
		slog.Error("failed to mark post as failed", slog.Int64("post_id", postID), slog.Any("error", err))
	}
}
