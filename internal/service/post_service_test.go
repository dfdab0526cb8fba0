package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/transfer"
	"github.com/jordibrook/marketing-api/pkg/validate"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.Equal(t, models.PostStatusDraft, deriveStatus(nil, now))
	assert.Equal(t, models.PostStatusDraft, deriveStatus(&past, now))
	assert.Equal(t, models.PostStatusScheduled, deriveStatus(&future, now))
}

func TestPublishDelay(t *testing.T) {
	now := time.Now()
	future := now.Add(30 * time.Minute)
	past := now.Add(-time.Minute)

	assert.Equal(t, time.Duration(0), publishDelay(nil, now))
	assert.Equal(t, time.Duration(0), publishDelay(&past, now))
	assert.Equal(t, 30*time.Minute, publishDelay(&future, now))
}

func TestPostCreate(t *testing.T) {
	accounts := newFakeAccountRepo()
	acc := accounts.add(&models.SocialAccount{UserID: 1, Platform: "instagram", AccountID: "ig-1"})
	posts := newFakePostRepo()
	s := NewPostService(posts, accounts)

	t.Run("draft without schedule", func(t *testing.T) {
		post, delay, err := s.Create(context.Background(), 1, &transfer.PostCreation{
			Content:         "hello world",
			Platform:        "instagram",
			SocialAccountID: acc.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, post.Status)
		assert.Zero(t, delay)
		assert.NotZero(t, post.ID)
	})

	t.Run("scheduled in the future", func(t *testing.T) {
		scheduledFor := time.Now().Add(2 * time.Hour)
		post, delay, err := s.Create(context.Background(), 1, &transfer.PostCreation{
			Content:         "later",
			Platform:        "instagram",
			SocialAccountID: acc.ID,
			ScheduledFor:    &scheduledFor,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusScheduled, post.Status)
		assert.InDelta(t, (2 * time.Hour).Seconds(), delay.Seconds(), 5)
	})

	t.Run("missing fields produce field errors", func(t *testing.T) {
		_, _, err := s.Create(context.Background(), 1, &transfer.PostCreation{})
		var fieldErrs validate.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "content")
		assert.Contains(t, fieldErrs, "platform")
		assert.Contains(t, fieldErrs, "socialAccountId")
	})

	t.Run("someone else's account", func(t *testing.T) {
		_, _, err := s.Create(context.Background(), 2, &transfer.PostCreation{
			Content:         "nope",
			Platform:        "instagram",
			SocialAccountID: acc.ID,
		})
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestPostUpdateStatusDerivation(t *testing.T) {
	accounts := newFakeAccountRepo()
	acc := accounts.add(&models.SocialAccount{UserID: 1, Platform: "instagram", AccountID: "ig-1"})
	posts := newFakePostRepo()
	s := NewPostService(posts, accounts)

	creation := &transfer.PostCreation{
		Content:         "draft",
		Platform:        "instagram",
		SocialAccountID: acc.ID,
	}
	created, _, err := s.Create(context.Background(), 1, creation)
	require.NoError(t, err)

	t.Run("draft becomes scheduled", func(t *testing.T) {
		scheduledFor := time.Now().Add(time.Hour)
		updated, delay, err := s.Update(context.Background(), 1, created.ID, &transfer.PostCreation{
			Content:         "draft",
			Platform:        "instagram",
			SocialAccountID: acc.ID,
			ScheduledFor:    &scheduledFor,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusScheduled, updated.Status)
		assert.Positive(t, delay)
	})

	t.Run("posted stays posted", func(t *testing.T) {
		require.NoError(t, posts.UpdateStatus(context.Background(), models.PostStatusPosted, created.ID))

		scheduledFor := time.Now().Add(time.Hour)
		updated, delay, err := s.Update(context.Background(), 1, created.ID, &transfer.PostCreation{
			Content:         "edited",
			Platform:        "instagram",
			SocialAccountID: acc.ID,
			ScheduledFor:    &scheduledFor,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusPosted, updated.Status)
		assert.Zero(t, delay)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, _, err := s.Update(context.Background(), 1, 999, creation)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestPostOwnership(t *testing.T) {
	accounts := newFakeAccountRepo()
	acc := accounts.add(&models.SocialAccount{UserID: 1, Platform: "instagram", AccountID: "ig-1"})
	posts := newFakePostRepo()
	s := NewPostService(posts, accounts)

	created, _, err := s.Create(context.Background(), 1, &transfer.PostCreation{
		Content:         "mine",
		Platform:        "instagram",
		SocialAccountID: acc.ID,
	})
	require.NoError(t, err)

	_, err = s.PostInfo(context.Background(), created.ID, 2)
	assert.True(t, errors.Is(err, ErrNotFound))

	err = s.Remove(context.Background(), 2, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.Remove(context.Background(), 1, created.ID))
	_, err = s.PostInfo(context.Background(), created.ID, 1)
	assert.True(t, errors.Is(err, ErrNotFound))
}
