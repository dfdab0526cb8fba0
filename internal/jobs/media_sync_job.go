package job

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/repository"
	"github.com/jordibrook/marketing-api/internal/service"
)

type MediaSyncJob struct {
	sr repository.SocialAccountRepository
	ig service.InstagramService
}

func NewMediaSyncJob(sr repository.SocialAccountRepository, ig service.InstagramService) *MediaSyncJob {
	return &MediaSyncJob{
		sr: sr,
		ig: ig,
	}
}

// SyncAll walks every active account and reconciles its remote media
// library. Syncs are idempotent, so overlapping runs only waste work.
func (c *MediaSyncJob) SyncAll() {
	ctx := context.Background()

	accounts, err := c.sr.ListActiveByPlatform(ctx, "instagram")
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.SocialAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			synced, err := c.ig.SyncAccountMedia(ctx, acc)
			if err != nil {
				slog.Info("unable to sync media",
					slog.Int64("account_id", acc.ID),
					slog.Any("error", err))
				return
			}
			slog.Info("media sync finished",
				slog.Int64("account_id", acc.ID),
				slog.Int("items", synced))
		}(acc)
	}

	wg.Wait()
}
