package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordibrook/marketing-api/internal/transfer"
)

func TestBuildPostListQueryNoFilter(t *testing.T) {
	query, args := buildPostListQuery(42, nil)

	assert.Contains(t, query, "user_id = $1")
	assert.NotContains(t, query, "AND")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.Equal(t, []interface{}{int64(42)}, args)
}

func TestBuildPostListQuerySingleConstraints(t *testing.T) {
	query, args := buildPostListQuery(42, &transfer.PostFilter{Status: "scheduled"})
	assert.Contains(t, query, "user_id = $1")
	assert.Contains(t, query, "status = $2")
	assert.Equal(t, []interface{}{int64(42), "scheduled"}, args)

	query, args = buildPostListQuery(42, &transfer.PostFilter{Platform: "instagram"})
	assert.Contains(t, query, "platform = $2")
	assert.Equal(t, []interface{}{int64(42), "instagram"}, args)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	query, args = buildPostListQuery(42, &transfer.PostFilter{From: &from})
	assert.Contains(t, query, "created_at >= $2")
	assert.Equal(t, []interface{}{int64(42), from}, args)

	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	query, args = buildPostListQuery(42, &transfer.PostFilter{To: &to})
	assert.Contains(t, query, "created_at <= $2")
	assert.Equal(t, []interface{}{int64(42), to}, args)
}

func TestBuildPostListQueryCombinesConjunctively(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	query, args := buildPostListQuery(42, &transfer.PostFilter{
		Status:   "scheduled",
		Platform: "instagram",
		From:     &from,
		To:       &to,
	})

	// ownership comes first and every constraint is ANDed after it
	ownerIdx := strings.Index(query, "user_id = $1")
	require.GreaterOrEqual(t, ownerIdx, 0)
	for _, predicate := range []string{
		"status = $2",
		"platform = $3",
		"created_at >= $4",
		"created_at <= $5",
	} {
		idx := strings.Index(query, predicate)
		require.GreaterOrEqual(t, idx, 0, predicate)
		assert.Greater(t, idx, ownerIdx, predicate)
	}
	assert.Equal(t, strings.Count(query, "AND"), 4)
	assert.Equal(t, []interface{}{int64(42), "scheduled", "instagram", from, to}, args)
}
