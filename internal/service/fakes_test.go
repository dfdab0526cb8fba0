package service

import (
	"context"
	"time"

	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/transfer"
)

// In-memory repository stand-ins shared by the service tests.

type fakeAccountRepo struct {
	accounts map[int64]*models.SocialAccount
	nextID   int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[int64]*models.SocialAccount)}
}

func (f *fakeAccountRepo) add(acc *models.SocialAccount) *models.SocialAccount {
	f.nextID++
	acc.ID = f.nextID
	f.accounts[acc.ID] = acc
	return acc
}

func (f *fakeAccountRepo) Upsert(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	for _, existing := range f.accounts {
		if existing.Platform == sa.Platform && existing.AccountID == sa.AccountID {
			sa.ID = existing.ID
			f.accounts[existing.ID] = sa
			return existing.ID, nil
		}
	}
	return f.add(sa).ID, nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) ListInfoByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	var out []*models.SocialAccount
	for _, acc := range f.accounts {
		if acc.UserID == userID {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) ListActiveByPlatform(ctx context.Context, platform string) ([]*models.SocialAccount, error) {
	var out []*models.SocialAccount
	for _, acc := range f.accounts {
		if acc.Platform == platform && acc.IsActive {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	acc, ok := f.accounts[accountID]
	return ok && acc.UserID == userID, nil
}

func (f *fakeAccountRepo) UpdateTokens(ctx context.Context, accountID int64, accessToken, refreshToken string, expiresAt time.Time) error {
	if acc, ok := f.accounts[accountID]; ok {
		acc.AccessToken = accessToken
		acc.RefreshToken = refreshToken
		acc.TokenExpiresAt = expiresAt
	}
	return nil
}

func (f *fakeAccountRepo) Remove(ctx context.Context, id int64) error {
	delete(f.accounts, id)
	return nil
}

type fakePostRepo struct {
	posts  map[int64]*models.Post
	nextID int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*models.Post)}
}

func (f *fakePostRepo) Create(ctx context.Context, post *models.Post) (int64, error) {
	f.nextID++
	stored := *post
	stored.ID = f.nextID
	f.posts[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return f.posts[id], nil
}

func (f *fakePostRepo) List(ctx context.Context, userID int64, filter *transfer.PostFilter) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range f.posts {
		if post.UserID != userID {
			continue
		}
		if filter != nil {
			if filter.Status != "" && post.Status != filter.Status {
				continue
			}
			if filter.Platform != "" && post.Platform != filter.Platform {
				continue
			}
			if filter.From != nil && post.CreatedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && post.CreatedAt.After(*filter.To) {
				continue
			}
		}
		out = append(out, post)
	}
	return out, nil
}

func (f *fakePostRepo) Update(ctx context.Context, post *models.Post) error {
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	post, ok := f.posts[postID]
	return ok && post.UserID == userID, nil
}

func (f *fakePostRepo) UpdateStatus(ctx context.Context, status string, postID int64) error {
	if post, ok := f.posts[postID]; ok {
		post.Status = status
	}
	return nil
}

func (f *fakePostRepo) Remove(ctx context.Context, id int64) error {
	delete(f.posts, id)
	return nil
}

type fakeMediaItemRepo struct {
	items   map[string]*models.MediaItem
	upserts int
}

func newFakeMediaItemRepo() *fakeMediaItemRepo {
	return &fakeMediaItemRepo{items: make(map[string]*models.MediaItem)}
}

func (f *fakeMediaItemRepo) Upsert(ctx context.Context, item *models.MediaItem) error {
	f.upserts++
	stored := *item
	f.items[item.MediaID] = &stored
	return nil
}

func (f *fakeMediaItemRepo) ListByAccountID(ctx context.Context, accountID int64) ([]*models.MediaItem, error) {
	var out []*models.MediaItem
	for _, item := range f.items {
		if item.SocialAccountID == accountID {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeAnalyticsRepo struct {
	lastPlatform string
	lastFrom     time.Time
	lastTo       time.Time
	sums         []*models.AccountPerformance
}

func (f *fakeAnalyticsRepo) List(ctx context.Context, userID int64, filter *transfer.AnalyticsFilter) ([]*models.PostAnalytics, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) SumByAccount(ctx context.Context, userID int64, platform string, from, to time.Time) ([]*models.AccountPerformance, error) {
	f.lastPlatform = platform
	f.lastFrom = from
	f.lastTo = to
	return f.sums, nil
}

type fakeOnboardingRepo struct {
	saved     *transfer.OnboardingSubmission
	aggregate *transfer.OnboardingAggregate
	saveErr   error
}

func (f *fakeOnboardingRepo) SaveSubmission(ctx context.Context, userID int64, sub *transfer.OnboardingSubmission) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = sub
	return nil
}

func (f *fakeOnboardingRepo) GetByUserID(ctx context.Context, userID int64) (*transfer.OnboardingAggregate, bool, error) {
	if f.aggregate == nil {
		return nil, false, nil
	}
	return f.aggregate, true, nil
}
