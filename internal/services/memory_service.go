package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"brandintel/internal/database"
	"brandintel/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// nearDuplicateThreshold is the cosine similarity above which a new text
	// is treated as a restatement of an already stored record
	nearDuplicateThreshold = 0.95

	// nearDuplicateWindow bounds how many recent records are compared on ingest
	nearDuplicateWindow = 200

	// defaultSearchLimit is used when a search request leaves limit unset
	defaultSearchLimit = 10
)

// Embedder turns text into a vector for similarity comparison
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// MemoryService stores brand facts for similarity-based retrieval. Records
// are append-only and strictly scoped per brand: ingestion and search both
// key on brandId and never cross it.
type MemoryService struct {
	mongodb    *database.MongoDB
	collection *mongo.Collection
	embedder   Embedder
}

// MemoryStats summarizes one brand's memory store
type MemoryStats struct {
	BrandID     string     `json:"brand_id"`
	RecordCount int64      `json:"record_count"`
	OldestAt    *time.Time `json:"oldest_at,omitempty"`
	NewestAt    *time.Time `json:"newest_at,omitempty"`
}

// NewMemoryService creates a new memory service
func NewMemoryService(mongodb *database.MongoDB, embedder Embedder) *MemoryService {
	return &MemoryService{
		mongodb:    mongodb,
		collection: mongodb.Collection(database.CollectionMemoryRecords),
		embedder:   embedder,
	}
}

// IngestContext stores one text for a brand unless it duplicates an existing
// record. Returns the stored (or matched) record and whether a new record was
// written. An embedding outage degrades to a logged skip, never an error.
func (s *MemoryService) IngestContext(ctx context.Context, brandID, text, sourceTag string, metadata map[string]interface{}) (*models.MemoryRecord, bool, error) {
	if brandID == "" {
		return nil, false, fmt.Errorf("brand ID is required")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false, fmt.Errorf("memory text is required")
	}

	contentHash := hashContent(normalizeMemoryText(trimmed))

	// Exact duplicate by normalized hash
	var existing models.MemoryRecord
	err := s.collection.FindOne(ctx, bson.M{"brandId": brandID, "contentHash": contentHash}).Decode(&existing)
	if err == nil {
		log.Printf("🔄 [MEMORY] Duplicate text for brand %s (record %s), skipping", brandID, existing.ID.Hex())
		return &existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, fmt.Errorf("failed to check duplicate: %w", err)
	}

	embedding, err := s.embedder.Embed(ctx, trimmed)
	if err != nil {
		var embErr *EmbeddingError
		if errors.As(err, &embErr) {
			log.Printf("⚠️ [MEMORY] Embedding unavailable, skipping ingestion for brand %s: %v", brandID, embErr)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to embed text: %w", err)
	}

	// Near-duplicate by similarity against recent records
	recent, err := s.recentRecords(ctx, brandID, nearDuplicateWindow)
	if err != nil {
		return nil, false, err
	}
	for i := range recent {
		if cosineSimilarity(embedding, recent[i].Embedding) >= nearDuplicateThreshold {
			log.Printf("🔄 [MEMORY] Near-duplicate of record %s for brand %s, skipping", recent[i].ID.Hex(), brandID)
			return &recent[i], false, nil
		}
	}

	record := models.MemoryRecord{
		ID:          primitive.NewObjectID(),
		BrandID:     brandID,
		Text:        trimmed,
		Embedding:   embedding,
		SourceTag:   sourceTag,
		Metadata:    metadata,
		ContentHash: contentHash,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		return nil, false, fmt.Errorf("failed to insert memory record: %w", err)
	}

	log.Printf("🧠 [MEMORY] Stored record %s for brand %s (tag: %s)", record.ID.Hex(), brandID, sourceTag)
	return &record, true, nil
}

// SearchMemory embeds the query and returns the brand's records scoring at or
// above threshold, best match first. An embedding outage degrades to an empty
// result with a logged warning, never an error.
func (s *MemoryService) SearchMemory(ctx context.Context, brandID, query string, threshold float64, limit int) ([]models.ScoredMemory, error) {
	if brandID == "" {
		return nil, fmt.Errorf("brand ID is required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	queryEmbedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		var embErr *EmbeddingError
		if errors.As(err, &embErr) {
			log.Printf("⚠️ [MEMORY] Embedding unavailable, search degraded to empty for brand %s: %v", brandID, embErr)
			return []models.ScoredMemory{}, nil
		}
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return s.Search(ctx, brandID, queryEmbedding, threshold, limit)
}

// Search ranks the brand's records against a caller-supplied query vector and
// returns those with cosine similarity at or above threshold, capped at limit
func (s *MemoryService) Search(ctx context.Context, brandID string, queryEmbedding []float64, threshold float64, limit int) ([]models.ScoredMemory, error) {
	if brandID == "" {
		return nil, fmt.Errorf("brand ID is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	records, err := s.brandRecords(ctx, brandID)
	if err != nil {
		return nil, err
	}

	return rankBySimilarity(brandID, records, queryEmbedding, threshold, limit), nil
}

// Stats summarizes the brand's memory store
func (s *MemoryService) Stats(ctx context.Context, brandID string) (*MemoryStats, error) {
	count, err := s.collection.CountDocuments(ctx, memoryBrandFilter(brandID))
	if err != nil {
		return nil, fmt.Errorf("failed to count memory records: %w", err)
	}

	stats := &MemoryStats{BrandID: brandID, RecordCount: count}
	if count == 0 {
		return stats, nil
	}

	var oldest, newest models.MemoryRecord
	if err := s.collection.FindOne(ctx, memoryBrandFilter(brandID),
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})).Decode(&oldest); err == nil {
		stats.OldestAt = &oldest.CreatedAt
	}
	if err := s.collection.FindOne(ctx, memoryBrandFilter(brandID),
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})).Decode(&newest); err == nil {
		stats.NewestAt = &newest.CreatedAt
	}
	return stats, nil
}

// memoryBrandFilter is the query filter every memory read goes through; it
// always pins brandId so one brand's records can never surface for another
func memoryBrandFilter(brandID string) bson.M {
	return bson.M{"brandId": brandID}
}

func (s *MemoryService) recentRecords(ctx context.Context, brandID string, limit int) ([]models.MemoryRecord, error) {
	cursor, err := s.collection.Find(ctx, memoryBrandFilter(brandID),
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to load recent records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.MemoryRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

func (s *MemoryService) brandRecords(ctx context.Context, brandID string) ([]models.MemoryRecord, error) {
	cursor, err := s.collection.Find(ctx, memoryBrandFilter(brandID))
	if err != nil {
		return nil, fmt.Errorf("failed to load memory records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.MemoryRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

// rankBySimilarity scores records against a query vector and returns the
// matches at or above threshold in descending similarity order. Records
// without an embedding, or belonging to a different brand, are never ranked.
func rankBySimilarity(brandID string, records []models.MemoryRecord, query []float64, threshold float64, limit int) []models.ScoredMemory {
	scored := make([]models.ScoredMemory, 0, len(records))
	for _, record := range records {
		if record.BrandID != brandID || len(record.Embedding) == 0 {
			continue
		}
		similarity := cosineSimilarity(query, record.Embedding)
		if similarity < threshold {
			continue
		}
		scored = append(scored, models.ScoredMemory{
			MemoryRecord: record,
			Similarity:   similarity,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// normalizeMemoryText canonicalizes text for hashing so trivial formatting
// differences dedup to the same record
func normalizeMemoryText(text string) string {
	normalized := strings.ToLower(text)

	normalized = strings.ReplaceAll(normalized, "\n", " ")
	normalized = strings.ReplaceAll(normalized, "\t", " ")
	normalized = strings.ReplaceAll(normalized, "\r", " ")
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = strings.ReplaceAll(normalized, "_", " ")

	normalized = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			return r
		}
		return -1
	}, normalized)

	return strings.Join(strings.Fields(normalized), " ")
}

// hashContent returns the SHA-256 hex digest of content
func hashContent(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
