package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"brandintel/internal/crypto"
	"brandintel/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// SocialFeedFetcher pulls recent posts for a handle from a LunarCrush-style
// creator API (Bearer credential).
type SocialFeedFetcher struct {
	baseURL string
	client  *resty.Client
}

type socialFeedResponse struct {
	Data []json.RawMessage `json:"data"`
}

type socialPost struct {
	ID           string  `json:"id"`
	Title        string  `json:"post_title"`
	Body         string  `json:"post_text"`
	Link         string  `json:"post_link"`
	PostType     string  `json:"post_type"`
	CreatedUnix  int64   `json:"post_created"`
	Image        string  `json:"post_image"`
	Likes        int64   `json:"likes"`
	Retweets     int64   `json:"retweets"`
	Replies      int64   `json:"replies"`
	Interactions int64   `json:"interactions_total"`
	Sentiment    float64 `json:"post_sentiment"`
}

// NewSocialFeedFetcher creates a social feed fetcher against the given API base
func NewSocialFeedFetcher(baseURL string) *SocialFeedFetcher {
	return &SocialFeedFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "BrandIntel-Bot/1.0"),
	}
}

func (f *SocialFeedFetcher) SourceType() string {
	return models.SourceTypeSocialFeed
}

// Fetch retrieves the handle's recent posts and normalizes them
func (f *SocialFeedFetcher) Fetch(ctx context.Context, source models.BrandSource, credential string, limit int) ([]models.ContentItem, error) {
	handle := strings.TrimPrefix(source.HandleOrURL, "@")

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+credential).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		Get(fmt.Sprintf("%s/creator/twitter/%s/posts/v1", f.baseURL, handle))

	if err != nil {
		return nil, &TransientFetchError{Err: err}
	}
	if resp.StatusCode() != 200 {
		return nil, classifyStatus(f.SourceType(), resp.StatusCode(), string(resp.Body()))
	}

	var feed socialFeedResponse
	if err := json.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("failed to parse social feed response: %w", err)
	}

	items := make([]models.ContentItem, 0, len(feed.Data))
	for _, raw := range feed.Data {
		item, err := f.normalizePost(source.OwnerID, raw)
		if err != nil {
			// Malformed individual items are skipped, not fatal to the batch
			logrus.Warnf("Skipping malformed social post: %v", err)
			continue
		}
		items = append(items, item)
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// normalizePost maps the vendor post shape into a canonical ContentItem
func (f *SocialFeedFetcher) normalizePost(ownerID string, raw json.RawMessage) (models.ContentItem, error) {
	var post socialPost
	if err := json.Unmarshal(raw, &post); err != nil {
		return models.ContentItem{}, &ItemParseError{SourceType: f.SourceType(), Err: err}
	}
	if post.ID == "" {
		return models.ContentItem{}, &ItemParseError{SourceType: f.SourceType(), Err: fmt.Errorf("post has no id")}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.ContentItem{}, &ItemParseError{SourceType: f.SourceType(), Err: err}
	}

	text := post.Title
	if post.Body != "" {
		if text != "" {
			text += "\n\n"
		}
		text += post.Body
	}

	var media []models.MediaRef
	if post.Image != "" {
		media = append(media, models.MediaRef{Type: "image", URL: post.Image})
	}

	item := models.ContentItem{
		OwnerID:     ownerID,
		SourceType:  f.SourceType(),
		ContentType: models.ContentTypePost,
		ExternalID:  post.ID,
		URL:         post.Link,
		Text:        text,
		Timestamp:   time.Unix(post.CreatedUnix, 0).UTC(),
		Metrics: models.EngagementMetrics{
			Likes:    post.Likes,
			Shares:   post.Retweets,
			Comments: post.Replies,
			Views:    post.Interactions,
		},
		Media:      media,
		RawPayload: crypto.ScrubTokens(payload).(map[string]interface{}),
		CreatedAt:  time.Now().UTC(),
	}
	return item, nil
}
