package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/jordibrook/marketing-api/configs"
	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/service"
	"github.com/jordibrook/marketing-api/pkg/utils"
)

type fakeInstagramService struct {
	callbackCode   string
	callbackUserID int64
}

func (f *fakeInstagramService) InstagramCallback(ctx context.Context, code string, userID int64) error {
	f.callbackCode = code
	f.callbackUserID = userID
	return nil
}

func (f *fakeInstagramService) RefreshToken(ctx context.Context, userID, accountID int64) error {
	return nil
}

func (f *fakeInstagramService) SyncMedia(ctx context.Context, userID, accountID int64) (int, error) {
	return 0, nil
}

func (f *fakeInstagramService) SyncAccountMedia(ctx context.Context, acc *models.SocialAccount) (int, error) {
	return 0, nil
}

func (f *fakeInstagramService) PublishPost(ctx context.Context, post *models.Post, acc *models.SocialAccount) error {
	return nil
}

func newConnectApp(cfg config.Config, ig service.InstagramService) *fiber.App {
	platform := NewPlatformHandler(service.NewPlatformService(cfg, nil), ig, cfg)

	app := fiber.New()
	app.Get("/auth/:platform", platform.AddSocialAccount)
	app.Get("/auth/:platform/callback", platform.CallbackHandler)
	return app
}

func TestConnectFlowCarriesStateThrough(t *testing.T) {
	cfg := config.Config{
		InstagramClientID:    "client-1",
		InstagramRedirectURI: "http://localhost:3000/auth/instagram/callback",
		SecretKey:            "test-secret",
		CookieName:           "marketing_session",
		FrontendURL:          "http://localhost:5173",
	}
	ig := &fakeInstagramService{}
	app := newConnectApp(cfg, ig)

	token, err := utils.GenerateToken(cfg.SecretKey, "7", time.Hour)
	require.NoError(t, err)

	// the authorize redirect must carry the caller token as state
	resp, err := app.Test(httptest.NewRequest("GET", "/auth/instagram?state="+url.QueryEscape(token), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "www.instagram.com", location.Host)
	assert.Equal(t, token, location.Query().Get("state"))
	assert.Equal(t, "client-1", location.Query().Get("client_id"))

	// the callback resolves that same state back to the user
	callbackURL := "/auth/instagram/callback?code=authcode&state=" + url.QueryEscape(location.Query().Get("state"))
	resp, err = app.Test(httptest.NewRequest("GET", callbackURL, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTemporaryRedirect, resp.StatusCode)

	assert.Equal(t, "authcode", ig.callbackCode)
	assert.Equal(t, int64(7), ig.callbackUserID)
}

func TestConnectFlowFallsBackToSessionCookie(t *testing.T) {
	cfg := config.Config{
		InstagramClientID:    "client-1",
		InstagramRedirectURI: "http://localhost:3000/auth/instagram/callback",
		SecretKey:            "test-secret",
		CookieName:           "marketing_session",
	}
	app := newConnectApp(cfg, &fakeInstagramService{})

	token, err := utils.GenerateToken(cfg.SecretKey, "9", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/auth/instagram", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, token, location.Query().Get("state"))
}

func TestCallbackRejectsBadState(t *testing.T) {
	cfg := config.Config{SecretKey: "test-secret", CookieName: "marketing_session"}
	ig := &fakeInstagramService{}
	app := newConnectApp(cfg, ig)

	resp, err := app.Test(httptest.NewRequest("GET", "/auth/instagram/callback?code=authcode&state=garbage", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, ig.callbackCode)
}
