package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/jordibrook/marketing-api/configs"
	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/pkg/utils"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func encryptedToken(t *testing.T, token string) string {
	t.Helper()
	enc, err := utils.Encrypt([]byte(token), []byte(testSecretKey))
	require.NoError(t, err)
	return enc
}

func newTestInstagramService(graphBase string, accounts *fakeAccountRepo, items *fakeMediaItemRepo) *instagramService {
	return &instagramService{
		cfg:       config.Config{SecretKey: testSecretKey},
		sa:        accounts,
		mi:        items,
		apiBase:   graphBase,
		graphBase: graphBase,
		client:    http.DefaultClient,
	}
}

func TestSyncAccountMediaFollowsCursors(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/media", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("after") == "page2" {
			fmt.Fprint(w, `{"data":[
				{"id":"m3","caption":"third","media_type":"VIDEO","media_url":"https://cdn/m3.mp4","timestamp":"2024-05-03T10:00:00+0000"}
			],"paging":{}}`)
			return
		}

		fmt.Fprintf(w, `{"data":[
			{"id":"m1","caption":"first","media_type":"IMAGE","media_url":"https://cdn/m1.jpg","permalink":"https://ig/m1","timestamp":"2024-05-01T10:00:00+0000"},
			{"id":"m2","caption":"second","media_type":"CAROUSEL_ALBUM","media_url":"https://cdn/m2.jpg","timestamp":"2024-05-02T10:00:00+0000"}
		],"paging":{"next":"%s/me/media?after=page2&access_token=tok"}}`, srv.URL)
	}))
	defer srv.Close()

	accounts := newFakeAccountRepo()
	acc := accounts.add(&models.SocialAccount{
		UserID:      1,
		Platform:    "instagram",
		AccountID:   "ig-1",
		AccessToken: encryptedToken(t, "tok"),
	})
	items := newFakeMediaItemRepo()
	ig := newTestInstagramService(srv.URL, accounts, items)

	synced, err := ig.SyncAccountMedia(context.Background(), acc)
	require.NoError(t, err)
	assert.Equal(t, 3, synced)
	require.Len(t, items.items, 3)

	first := items.items["m1"]
	assert.Equal(t, acc.ID, first.SocialAccountID)
	assert.Equal(t, "image", first.MediaType)
	assert.Equal(t, "first", first.Title)
	assert.Equal(t, "https://ig/m1", first.Permalink)
	assert.Equal(t, 2024, first.PostedAt.Year())

	assert.Equal(t, "carousel_album", items.items["m2"].MediaType)
	assert.Equal(t, "video", items.items["m3"].MediaType)
}

func TestSyncAccountMediaIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[
			{"id":"m1","caption":"only","media_type":"IMAGE","media_url":"https://cdn/m1.jpg","timestamp":"2024-05-01T10:00:00+0000"}
		],"paging":{}}`)
	}))
	defer srv.Close()

	accounts := newFakeAccountRepo()
	acc := accounts.add(&models.SocialAccount{
		UserID:      1,
		Platform:    "instagram",
		AccountID:   "ig-1",
		AccessToken: encryptedToken(t, "tok"),
	})
	items := newFakeMediaItemRepo()
	ig := newTestInstagramService(srv.URL, accounts, items)

	for i := 0; i < 3; i++ {
		synced, err := ig.SyncAccountMedia(context.Background(), acc)
		require.NoError(t, err)
		assert.Equal(t, 1, synced)
	}

	// same row touched every pass, never duplicated
	assert.Len(t, items.items, 1)
	assert.Equal(t, 3, items.upserts)
}

func TestSyncMediaOwnership(t *testing.T) {
	accounts := newFakeAccountRepo()
	acc := accounts.add(&models.SocialAccount{
		UserID:      1,
		Platform:    "instagram",
		AccountID:   "ig-1",
		AccessToken: encryptedToken(t, "tok"),
	})
	ig := newTestInstagramService("http://unused.invalid", accounts, newFakeMediaItemRepo())

	_, err := ig.SyncMedia(context.Background(), 2, acc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefreshTokenUpdatesStoredTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/refresh_access_token", r.URL.Path)
		require.Equal(t, "ig_refresh_token", r.URL.Query().Get("grant_type"))
		require.Equal(t, "old-token", r.URL.Query().Get("access_token"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"new-token","expires_in":5184000}`)
	}))
	defer srv.Close()

	accounts := newFakeAccountRepo()
	acc := accounts.add(&models.SocialAccount{
		UserID:       1,
		Platform:     "instagram",
		AccountID:    "ig-1",
		AccessToken:  encryptedToken(t, "old-token"),
		RefreshToken: encryptedToken(t, "old-token"),
	})
	ig := newTestInstagramService(srv.URL, accounts, newFakeMediaItemRepo())

	require.NoError(t, ig.RefreshToken(context.Background(), 1, acc.ID))

	stored, err := utils.Decrypt(acc.AccessToken, []byte(testSecretKey))
	require.NoError(t, err)
	assert.Equal(t, "new-token", stored)
	assert.False(t, acc.TokenExpiresAt.IsZero())
}

func TestInstagramCallbackConnectsAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/oauth/access_token":
			fmt.Fprint(w, `{"access_token":"short","user_id":42}`)
		case "/access_token":
			fmt.Fprint(w, `{"access_token":"long","token_type":"bearer","expires_in":5184000}`)
		case "/me":
			fmt.Fprint(w, `{"id":"ig-42","username":"brand","name":"Brand Co","profile_picture_url":"https://cdn/p.jpg"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	accounts := newFakeAccountRepo()
	ig := newTestInstagramService(srv.URL, accounts, newFakeMediaItemRepo())

	require.NoError(t, ig.InstagramCallback(context.Background(), "auth-code", 7))

	require.Len(t, accounts.accounts, 1)
	acc := accounts.accounts[1]
	assert.Equal(t, int64(7), acc.UserID)
	assert.Equal(t, "instagram", acc.Platform)
	assert.Equal(t, "ig-42", acc.AccountID)
	assert.Equal(t, "brand", acc.AccountUsername)

	// tokens are stored encrypted, never in the clear
	assert.NotEqual(t, "long", acc.AccessToken)
	decrypted, err := utils.Decrypt(acc.AccessToken, []byte(testSecretKey))
	require.NoError(t, err)
	assert.Equal(t, "long", decrypted)
}

func TestInstagramCallbackAbortsOnFailure(t *testing.T) {
	// profile fetch fails: no partial account may be written
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/oauth/access_token":
			fmt.Fprint(w, `{"access_token":"short","user_id":42}`)
		case "/access_token":
			fmt.Fprint(w, `{"access_token":"long","token_type":"bearer","expires_in":5184000}`)
		default:
			http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	accounts := newFakeAccountRepo()
	ig := newTestInstagramService(srv.URL, accounts, newFakeMediaItemRepo())

	require.Error(t, ig.InstagramCallback(context.Background(), "auth-code", 7))
	assert.Empty(t, accounts.accounts)
}

func TestParseMediaTimestamp(t *testing.T) {
	ts := parseMediaTimestamp("2024-05-01T10:00:00+0000")
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.May, ts.Month())

	ts = parseMediaTimestamp("2024-05-01T10:00:00Z")
	assert.Equal(t, 2024, ts.Year())

	// garbage must not be mistaken for a real posting time
	assert.True(t, parseMediaTimestamp("not-a-timestamp").IsZero())
	assert.True(t, parseMediaTimestamp("").IsZero())
}
