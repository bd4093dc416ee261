package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content types
const (
	ContentTypePost  = "post"
	ContentTypeVideo = "video"
	ContentTypePage  = "page"
)

// ContentItem represents one normalized unit of external content.
// Items are append-only: created by a fetcher run and never mutated.
// (ownerId, sourceType, externalId) is unique when externalId is present;
// page-type items have no externalId and are identified by URL instead.
type ContentItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     string             `bson:"ownerId" json:"owner_id"`
	SourceType  string             `bson:"sourceType" json:"source_type"`
	ContentType string             `bson:"contentType" json:"content_type"`
	ExternalID  string             `bson:"externalId,omitempty" json:"external_id,omitempty"`
	URL         string             `bson:"url" json:"url"`
	Text        string             `bson:"text" json:"text"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`

	Metrics EngagementMetrics `bson:"metrics" json:"metrics"`
	Media   []MediaRef        `bson:"media,omitempty" json:"media,omitempty"`

	// Scrubbed copy of the original external record. Always passes through
	// crypto.ScrubTokens before persistence.
	RawPayload map[string]interface{} `bson:"rawPayload,omitempty" json:"raw_payload,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// EngagementMetrics holds engagement counters. Missing counters from a source
// default to zero, never null.
type EngagementMetrics struct {
	Likes    int64 `bson:"likes" json:"likes"`
	Shares   int64 `bson:"shares" json:"shares"`
	Comments int64 `bson:"comments" json:"comments"`
	Views    int64 `bson:"views" json:"views"`
}

// MediaRef points at one attached media asset
type MediaRef struct {
	Type string `bson:"type" json:"type"` // "image" or "video"
	URL  string `bson:"url" json:"url"`
}
