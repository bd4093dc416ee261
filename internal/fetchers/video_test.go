package fetchers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"brandintel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const videoSearchFixture = `{
	"items": [
		{
			"id": {"videoId": "dQw4w9WgXcQ"},
			"snippet": {
				"title": "Quarterly update",
				"description": "What we built this quarter",
				"publishedAt": "2026-08-20T14:30:00Z",
				"thumbnails": {"high": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq.jpg"}}
			},
			"statistics": {"viewCount": "15000", "likeCount": "820", "commentCount": "96"}
		},
		{
			"id": {"videoId": "badDate"},
			"snippet": {"title": "Broken timestamp", "publishedAt": "not-a-date"}
		},
		{
			"id": {"videoId": "minimal1"},
			"snippet": {"title": "Short", "publishedAt": "2026-08-21T09:00:00Z"}
		}
	]
}`

func TestVideoChannelFetcherNormalizesVideos(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"channelId": r.URL.Query().Get("channelId"),
			"key":       r.URL.Query().Get("key"),
			"part":      r.URL.Query().Get("part"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(videoSearchFixture))
	}))
	defer server.Close()

	fetcher := NewVideoChannelFetcher(server.URL)
	source := models.BrandSource{OwnerID: "brand-1", SourceType: models.SourceTypeVideoChannel, HandleOrURL: "UCacme"}

	items, err := fetcher.Fetch(context.Background(), source, "api-key-123", 50)
	require.NoError(t, err)

	assert.Equal(t, "UCacme", gotQuery["channelId"])
	assert.Equal(t, "api-key-123", gotQuery["key"])
	assert.Equal(t, "snippet,statistics", gotQuery["part"])

	// The unparseable publishedAt item is skipped, not fatal
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, models.ContentTypeVideo, first.ContentType)
	assert.Equal(t, "dQw4w9WgXcQ", first.ExternalID)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", first.URL)
	assert.Equal(t, "Quarterly update\n\nWhat we built this quarter", first.Text)
	assert.Equal(t, 2026, first.Timestamp.Year())
	assert.Equal(t, int64(820), first.Metrics.Likes)
	assert.Equal(t, int64(96), first.Metrics.Comments)
	assert.Equal(t, int64(15000), first.Metrics.Views)
	require.Len(t, first.Media, 1)

	second := items[1]
	assert.Equal(t, "minimal1", second.ExternalID)
	assert.Zero(t, second.Metrics.Views)
	assert.Empty(t, second.Media)
}

func TestVideoChannelFetcherAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "API key invalid"}}`))
	}))
	defer server.Close()

	fetcher := NewVideoChannelFetcher(server.URL)
	source := models.BrandSource{OwnerID: "brand-1", HandleOrURL: "UCacme"}

	_, err := fetcher.Fetch(context.Background(), source, "revoked-key", 50)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, int64(0), parseCount(""))
	assert.Equal(t, int64(0), parseCount("not-a-number"))
	assert.Equal(t, int64(42), parseCount("42"))
}
