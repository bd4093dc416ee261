package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"brandintel/internal/crypto"
	"brandintel/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// VideoChannelFetcher pulls recent uploads for a channel from a YouTube-style
// data API (API-key credential).
type VideoChannelFetcher struct {
	baseURL string
	client  *resty.Client
}

type videoSearchResponse struct {
	Items []json.RawMessage `json:"items"`
}

type videoItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
		Thumbnails  struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
}

// NewVideoChannelFetcher creates a video channel fetcher against the given API base
func NewVideoChannelFetcher(baseURL string) *VideoChannelFetcher {
	return &VideoChannelFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "BrandIntel-Bot/1.0"),
	}
}

func (f *VideoChannelFetcher) SourceType() string {
	return models.SourceTypeVideoChannel
}

// Fetch retrieves the channel's recent uploads and normalizes them
func (f *VideoChannelFetcher) Fetch(ctx context.Context, source models.BrandSource, credential string, limit int) ([]models.ContentItem, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet,statistics",
			"channelId":  source.HandleOrURL,
			"order":      "date",
			"type":       "video",
			"maxResults": strconv.Itoa(limit),
			"key":        credential,
		}).
		Get(f.baseURL + "/search")

	if err != nil {
		return nil, &TransientFetchError{Err: err}
	}
	if resp.StatusCode() != 200 {
		return nil, classifyStatus(f.SourceType(), resp.StatusCode(), string(resp.Body()))
	}

	var search videoSearchResponse
	if err := json.Unmarshal(resp.Body(), &search); err != nil {
		return nil, fmt.Errorf("failed to parse video search response: %w", err)
	}

	items := make([]models.ContentItem, 0, len(search.Items))
	for _, raw := range search.Items {
		item, err := f.normalizeVideo(source.OwnerID, raw)
		if err != nil {
			logrus.Warnf("Skipping malformed video item: %v", err)
			continue
		}
		items = append(items, item)
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// normalizeVideo maps the vendor video shape into a canonical ContentItem
func (f *VideoChannelFetcher) normalizeVideo(ownerID string, raw json.RawMessage) (models.ContentItem, error) {
	var video videoItem
	if err := json.Unmarshal(raw, &video); err != nil {
		return models.ContentItem{}, &ItemParseError{SourceType: f.SourceType(), Err: err}
	}
	if video.ID.VideoID == "" {
		return models.ContentItem{}, &ItemParseError{SourceType: f.SourceType(), Err: fmt.Errorf("video has no id")}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.ContentItem{}, &ItemParseError{SourceType: f.SourceType(), Err: err}
	}

	published, err := time.Parse(time.RFC3339, video.Snippet.PublishedAt)
	if err != nil {
		return models.ContentItem{}, &ItemParseError{
			SourceType: f.SourceType(),
			Err:        fmt.Errorf("invalid publishedAt %q: %w", video.Snippet.PublishedAt, err),
		}
	}

	text := video.Snippet.Title
	if video.Snippet.Description != "" {
		if text != "" {
			text += "\n\n"
		}
		text += video.Snippet.Description
	}

	var media []models.MediaRef
	if video.Snippet.Thumbnails.High.URL != "" {
		media = append(media, models.MediaRef{Type: "image", URL: video.Snippet.Thumbnails.High.URL})
	}

	item := models.ContentItem{
		OwnerID:     ownerID,
		SourceType:  f.SourceType(),
		ContentType: models.ContentTypeVideo,
		ExternalID:  video.ID.VideoID,
		URL:         "https://www.youtube.com/watch?v=" + video.ID.VideoID,
		Text:        text,
		Timestamp:   published.UTC(),
		Metrics: models.EngagementMetrics{
			// Counters arrive as strings; missing or malformed ones default to zero
			Likes:    parseCount(video.Statistics.LikeCount),
			Comments: parseCount(video.Statistics.CommentCount),
			Views:    parseCount(video.Statistics.ViewCount),
		},
		Media:      media,
		RawPayload: crypto.ScrubTokens(payload).(map[string]interface{}),
		CreatedAt:  time.Now().UTC(),
	}
	return item, nil
}

func parseCount(value string) int64 {
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
