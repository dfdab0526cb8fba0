package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "github.com/jordibrook/marketing-api/configs"
	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/repository"
	"github.com/jordibrook/marketing-api/internal/transfer"
	"github.com/jordibrook/marketing-api/pkg/utils"
)

const (
	instagramAPIBase   = "https://api.instagram.com"
	instagramGraphBase = "https://graph.instagram.com"

	// runaway guard for cursor-following media sync
	maxMediaPages = 50
)

type InstagramService interface {
	// InstagramCallback runs the connect sequence: code -> short-lived
	// token -> long-lived token -> profile -> account upsert. A failure
	// at any step aborts the whole operation; no partial account is
	// written.
	InstagramCallback(ctx context.Context, code string, userID int64) error
	// RefreshToken renews the long-lived token for one account. Renewal
	// is only ever caller-invoked; nothing refreshes tokens in the
	// background.
	RefreshToken(ctx context.Context, userID, accountID int64) error
	SyncMedia(ctx context.Context, userID, accountID int64) (int, error)
	SyncAccountMedia(ctx context.Context, acc *models.SocialAccount) (int, error)
	PublishPost(ctx context.Context, post *models.Post, acc *models.SocialAccount) error
}

type instagramService struct {
	cfg config.Config
	sa  repository.SocialAccountRepository
	mi  repository.MediaItemRepository

	apiBase   string
	graphBase string
	client    *http.Client
}

func NewInstagramService(
	cfg config.Config,
	sa repository.SocialAccountRepository,
	mi repository.MediaItemRepository) InstagramService {
	return &instagramService{
		cfg:       cfg,
		sa:        sa,
		mi:        mi,
		apiBase:   instagramAPIBase,
		graphBase: instagramGraphBase,
		client:    http.DefaultClient,
	}
}

func (ig *instagramService) InstagramCallback(ctx context.Context, code string, userID int64) error {
	var err error

	if code == "" {
		err = errors.New("code is empty")
		slog.Info(err.Error())
		return err
	}

	if userID == 0 {
		err = errors.New("user not found")
		slog.Info(err.Error())
		return err
	}

	token, err := ig.exchangeCodeForToken(ctx, code)
	if err != nil {
		return err
	}

	userInfo, err := ig.getUserInfo(ctx, token.AccessToken)
	if err != nil {
		return err
	}

	encryptedToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(ig.cfg.SecretKey))
	if err != nil {
		return err
	}

	accountInfo := &models.SocialAccount{
		UserID:          userID,
		Platform:        "instagram",
		AccountID:       userInfo.UserID,
		AccountName:     userInfo.Name,
		AccountUsername: userInfo.Username,
		ProfilePicture:  userInfo.ProfilePicture,
		AccessToken:     encryptedToken,
		RefreshToken:    encryptedToken,
		TokenExpiresAt:  token.ExpiresAt,
	}

	if _, err = ig.sa.Upsert(ctx, accountInfo); err != nil {
		return err
	}
	return nil
}

func (ig *instagramService) getShortLivedToken(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", ig.cfg.InstagramClientID)
	data.Set("client_secret", ig.cfg.InstagramClientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", ig.cfg.InstagramRedirectURI)
	data.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, "POST",
		ig.apiBase+"/oauth/access_token", strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ig.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to get short-lived token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("error response from Instagram: %s (status code: %d)", body, resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		UserID      int64  `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	return result.AccessToken, nil
}

func (ig *instagramService) getLongLivedToken(ctx context.Context, shortLivedToken string) (*transfer.InstagramToken, error) {
	reqURL := fmt.Sprintf(
		"%s/access_token?grant_type=ig_exchange_token&client_secret=%s&access_token=%s",
		ig.graphBase, ig.cfg.InstagramClientSecret, shortLivedToken,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := ig.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to get long-lived token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error response from Instagram: %s (status code: %d)", body, resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode long-lived token response: %w", err)
	}

	return &transfer.InstagramToken{
		AccessToken:    result.AccessToken,
		LongLivedToken: result.AccessToken,
		ExpiresAt:      time.Now().Add(time.Duration(result.ExpiresIn) * time.Second),
	}, nil
}

func (ig *instagramService) exchangeCodeForToken(ctx context.Context, code string) (*transfer.InstagramToken, error) {
	shortLived, err := ig.getShortLivedToken(ctx, code)
	if err != nil {
		return nil, err
	}
	return ig.getLongLivedToken(ctx, shortLived)
}

func (ig *instagramService) getUserInfo(ctx context.Context, accessToken string) (*transfer.InstagramUserInfo, error) {
	reqURL := fmt.Sprintf(
		"%s/me?fields=id,username,name,account_type,profile_picture_url&access_token=%s",
		ig.graphBase, accessToken,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := ig.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error response from Instagram: %s (status code: %d)", body, resp.StatusCode)
	}

	var userInfo transfer.InstagramUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return &userInfo, nil
}

func (ig *instagramService) RefreshToken(ctx context.Context, userID, accountID int64) error {
	acc, err := ig.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}

	refreshToken, err := utils.Decrypt(acc.RefreshToken, []byte(ig.cfg.SecretKey))
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf(
		"%s/refresh_access_token?grant_type=ig_refresh_token&access_token=%s",
		ig.graphBase, refreshToken,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := ig.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("error response from Instagram: %s (status code: %d)", body, resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	encryptedToken, err := utils.Encrypt([]byte(result.AccessToken), []byte(ig.cfg.SecretKey))
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(time.Duration(result.ExpiresIn) * time.Second)
	return ig.sa.UpdateTokens(ctx, accountID, encryptedToken, encryptedToken, expiresAt)
}

func (ig *instagramService) SyncMedia(ctx context.Context, userID, accountID int64) (int, error) {
	acc, err := ig.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return 0, err
	}
	return ig.SyncAccountMedia(ctx, acc)
}

// SyncAccountMedia reconciles the remote media library into local
// storage, following paging cursors until the listing is exhausted.
// Re-running against an unchanged library touches the same rows again
// without creating duplicates.
func (ig *instagramService) SyncAccountMedia(ctx context.Context, acc *models.SocialAccount) (int, error) {
	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(ig.cfg.SecretKey))
	if err != nil {
		return 0, err
	}

	reqURL := fmt.Sprintf(
		"%s/me/media?fields=id,caption,media_type,media_url,thumbnail_url,permalink,timestamp&access_token=%s",
		ig.graphBase, accessToken,
	)

	synced := 0
	for page := 0; reqURL != "" && page < maxMediaPages; page++ {
		listing, err := ig.fetchMediaPage(ctx, reqURL)
		if err != nil {
			return synced, err
		}

		for _, media := range listing.Data {
			item := &models.MediaItem{
				SocialAccountID: acc.ID,
				MediaID:         media.ID,
				MediaType:       strings.ToLower(media.MediaType),
				Title:           media.Caption,
				MediaURL:        media.MediaURL,
				ThumbnailURL:    media.ThumbnailURL,
				Permalink:       media.Permalink,
				PostedAt:        parseMediaTimestamp(media.Timestamp),
			}
			if err := ig.mi.Upsert(ctx, item); err != nil {
				return synced, fmt.Errorf("error saving media item %s: %w", media.ID, err)
			}
			synced++
		}

		reqURL = listing.Paging.Next
	}
	return synced, nil
}

func (ig *instagramService) fetchMediaPage(ctx context.Context, reqURL string) (*transfer.InstagramMediaPage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := ig.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to fetch media listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error response from Instagram: %s (status code: %d)", body, resp.StatusCode)
	}

	var listing transfer.InstagramMediaPage
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return &listing, nil
}

// Graph timestamps come back as 2024-05-01T10:00:00+0000. Anything
// unparseable is stored as the zero time so bad data stays visible.
func parseMediaTimestamp(value string) time.Time {
	if ts, err := time.Parse("2006-01-02T15:04:05-0700", value); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	slog.Info("unrecognized media timestamp", "value", value)
	return time.Time{}
}

func (ig *instagramService) ownedAccount(ctx context.Context, userID, accountID int64) (*models.SocialAccount, error) {
	isOwned, err := ig.sa.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if !isOwned {
		return nil, ErrNotFound
	}

	acc, err := ig.sa.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrNotFound
	}
	return acc, nil
}

// PublishPost pushes a draft or scheduled post to Instagram: one media
// container per URL, a carousel container when there are several, then
// a publish call.
func (ig *instagramService) PublishPost(ctx context.Context, post *models.Post, acc *models.SocialAccount) error {
	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(ig.cfg.SecretKey))
	if err != nil {
		return err
	}

	if len(post.MediaURLs) == 0 {
		return fmt.Errorf("no media attached to post %d", post.ID)
	}

	if len(post.MediaURLs) == 1 {
		containerID, err := ig.createMediaContainer(ctx, acc.AccountID, map[string]interface{}{
			"image_url":    post.MediaURLs[0],
			"caption":      post.Content,
			"access_token": accessToken,
		})
		if err != nil {
			return fmt.Errorf("failed to create media container: %w", err)
		}
		return ig.publishContainer(ctx, acc.AccountID, containerID, accessToken)
	}

	childIDs := make([]string, 0, len(post.MediaURLs))
	for _, mediaURL := range post.MediaURLs {
		containerID, err := ig.createMediaContainer(ctx, acc.AccountID, map[string]interface{}{
			"image_url":        mediaURL,
			"is_carousel_item": true,
			"access_token":     accessToken,
		})
		if err != nil {
			return fmt.Errorf("failed to create carousel item: %w", err)
		}
		childIDs = append(childIDs, containerID)
	}

	carouselID, err := ig.createMediaContainer(ctx, acc.AccountID, map[string]interface{}{
		"media_type":   "CAROUSEL",
		"caption":      post.Content,
		"children":     childIDs,
		"access_token": accessToken,
	})
	if err != nil {
		return fmt.Errorf("failed to create carousel container: %w", err)
	}
	return ig.publishContainer(ctx, acc.AccountID, carouselID, accessToken)
}

func (ig *instagramService) createMediaContainer(ctx context.Context, accountID string, payload map[string]interface{}) (string, error) {
	reqURL := fmt.Sprintf("%s/v21.0/%s/media", ig.graphBase, accountID)

	result, err := ig.postJSON(ctx, reqURL, payload)
	if err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", errors.New("no media ID returned from Instagram")
	}
	return result.ID, nil
}

func (ig *instagramService) publishContainer(ctx context.Context, accountID, containerID, accessToken string) error {
	reqURL := fmt.Sprintf("%s/v21.0/%s/media_publish", ig.graphBase, accountID)

	_, err := ig.postJSON(ctx, reqURL, map[string]interface{}{
		"creation_id":  containerID,
		"access_token": accessToken,
	})
	return err
}

func (ig *instagramService) postJSON(ctx context.Context, reqURL string, payload map[string]interface{}) (*struct {
	ID string `json:"id"`
}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ig.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code from Instagram: %d (%s)", resp.StatusCode, respBody)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return &result, nil
}
