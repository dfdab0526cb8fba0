package service

import (
	"context"
	"fmt"
	"net/url"

	config "github.com/jordibrook/marketing-api/configs"
	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/repository"
)

type PlatformService interface {
	// GetAuthURL builds the platform authorize URL. The state value is
	// the caller's own session token; the callback uses it to tie the
	// connected account back to the user.
	GetAuthURL(platform, state string) (string, error)
	ConnectedAccounts(ctx context.Context, userID int64) ([]*models.SocialAccount, error)
	DeleteAccount(ctx context.Context, userID, accountID int64) error
}

type platformService struct {
	cfg config.Config
	sa  repository.SocialAccountRepository
}

func NewPlatformService(cfg config.Config, sa repository.SocialAccountRepository) PlatformService {
	return &platformService{
		cfg: cfg,
		sa:  sa,
	}
}

func (p *platformService) GetAuthURL(platform, state string) (string, error) {
	switch platform {
	case "instagram":
		params := url.Values{}
		params.Set("client_id", p.cfg.InstagramClientID)
		params.Set("redirect_uri", p.cfg.InstagramRedirectURI)
		params.Set("response_type", "code")
		params.Set("scope", "instagram_business_basic,instagram_business_content_publish")
		params.Set("state", state)
		return "https://www.instagram.com/oauth/authorize?" + params.Encode(), nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", platform)
	}
}

func (p *platformService) ConnectedAccounts(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	accounts, err := p.sa.ListInfoByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (p *platformService) DeleteAccount(ctx context.Context, userID, accountID int64) error {
	isOwned, err := p.sa.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !isOwned {
		return ErrNotFound
	}
	return p.sa.Remove(ctx, accountID)
}
