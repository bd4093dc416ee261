package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRecord is one retrievable fact stored for similarity-based retrieval.
// Records are immutable and never deleted; retrieval for one brand must never
// surface a record ingested under another brand.
type MemoryRecord struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	BrandID   string                 `bson:"brandId" json:"brand_id"`
	Text      string                 `bson:"text" json:"text"`
	Embedding []float64              `bson:"embedding" json:"-"`
	SourceTag string                 `bson:"sourceTag" json:"source_tag"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`

	// SHA-256 of the normalized text, for deduplication
	ContentHash string `bson:"contentHash" json:"content_hash"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// ScoredMemory is a memory record paired with its similarity to a query
type ScoredMemory struct {
	MemoryRecord
	Similarity float64 `json:"similarity"`
}
