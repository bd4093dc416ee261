package services

import (
	"context"
	"math"
	"testing"

	"brandintel/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeMemoryText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "case and punctuation collapse",
			input:    "The Brand launched V2!",
			expected: "the brand launched v2",
		},
		{
			name:     "separators become spaces",
			input:    "multi-word\nsnake_case\ttext",
			expected: "multi word snake case text",
		},
		{
			name:     "whitespace runs collapse",
			input:    "  spaced    out  ",
			expected: "spaced out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeMemoryText(tt.input)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestHashContentStableAcrossFormatting(t *testing.T) {
	a := hashContent(normalizeMemoryText("The brand launched V2!"))
	b := hashContent(normalizeMemoryText("the  brand\nlaunched v2"))
	if a != b {
		t.Error("Expected formatting variants to hash identically")
	}

	c := hashContent(normalizeMemoryText("the brand launched v3"))
	if a == c {
		t.Error("Expected different content to hash differently")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, expected: 1},
		{name: "opposite", a: []float64{1, 0}, b: []float64{-1, 0}, expected: -1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, expected: 0},
		{name: "mismatched lengths", a: []float64{1, 2}, b: []float64{1, 2, 3}, expected: 0},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 2}, expected: 0},
		{name: "empty", a: nil, b: nil, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func memoryRecord(brandID, text string, embedding []float64) models.MemoryRecord {
	return models.MemoryRecord{
		ID:        primitive.NewObjectID(),
		BrandID:   brandID,
		Text:      text,
		Embedding: embedding,
	}
}

func TestRankBySimilarityOrdering(t *testing.T) {
	records := []models.MemoryRecord{
		memoryRecord("brand-1", "far", []float64{0, 1}),
		memoryRecord("brand-1", "close", []float64{1, 0.1}),
		memoryRecord("brand-1", "exact", []float64{1, 0}),
	}

	ranked := rankBySimilarity("brand-1", records, []float64{1, 0}, -1, 10)

	if len(ranked) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(ranked))
	}
	if ranked[0].Text != "exact" || ranked[1].Text != "close" || ranked[2].Text != "far" {
		t.Errorf("Wrong order: %s, %s, %s", ranked[0].Text, ranked[1].Text, ranked[2].Text)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Similarity > ranked[i-1].Similarity {
			t.Error("Expected descending similarity order")
		}
	}
}

func TestRankBySimilarityRespectsLimit(t *testing.T) {
	records := []models.MemoryRecord{
		memoryRecord("brand-1", "a", []float64{1, 0}),
		memoryRecord("brand-1", "b", []float64{0.9, 0.1}),
		memoryRecord("brand-1", "c", []float64{0.8, 0.2}),
	}

	ranked := rankBySimilarity("brand-1", records, []float64{1, 0}, 0, 2)
	if len(ranked) != 2 {
		t.Errorf("Expected 2 results, got %d", len(ranked))
	}
}

func TestRankBySimilaritySkipsRecordsWithoutEmbedding(t *testing.T) {
	records := []models.MemoryRecord{
		memoryRecord("brand-1", "no vector", nil),
		memoryRecord("brand-1", "has vector", []float64{1, 0}),
	}

	ranked := rankBySimilarity("brand-1", records, []float64{1, 0}, 0, 10)
	if len(ranked) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(ranked))
	}
	if ranked[0].Text != "has vector" {
		t.Errorf("Expected the embedded record, got %q", ranked[0].Text)
	}
}

func TestRankBySimilarityEmptyInput(t *testing.T) {
	ranked := rankBySimilarity("brand-1", nil, []float64{1, 0}, 0, 10)
	if len(ranked) != 0 {
		t.Errorf("Expected no results, got %d", len(ranked))
	}
}

func TestRankBySimilarityAppliesThreshold(t *testing.T) {
	records := []models.MemoryRecord{
		memoryRecord("brand-1", "aligned", []float64{1, 0.05}),
		memoryRecord("brand-1", "drifting", []float64{1, 1}),
		memoryRecord("brand-1", "orthogonal", []float64{0, 1}),
	}

	ranked := rankBySimilarity("brand-1", records, []float64{1, 0}, 0.9, 10)
	if len(ranked) != 1 {
		t.Fatalf("Expected 1 result above threshold, got %d", len(ranked))
	}
	if ranked[0].Text != "aligned" {
		t.Errorf("Expected the aligned record, got %q", ranked[0].Text)
	}
	for _, match := range ranked {
		if match.Similarity < 0.9 {
			t.Errorf("Record %q scored %v, below threshold", match.Text, match.Similarity)
		}
	}
}

func TestRankBySimilarityImpossibleThresholdReturnsNothing(t *testing.T) {
	records := []models.MemoryRecord{
		memoryRecord("brand-1", "exact", []float64{1, 0}),
		memoryRecord("brand-1", "close", []float64{1, 0.1}),
	}

	// Cosine similarity never exceeds 1, so a 1.1 threshold matches nothing
	// even for an identical vector
	ranked := rankBySimilarity("brand-1", records, []float64{1, 0}, 1.1, 10)
	if len(ranked) != 0 {
		t.Errorf("Expected no results above an impossible threshold, got %d", len(ranked))
	}
}

func TestRankBySimilarityNeverCrossesBrands(t *testing.T) {
	records := []models.MemoryRecord{
		memoryRecord("brand-a", "ours", []float64{1, 0}),
		memoryRecord("brand-b", "theirs exact", []float64{1, 0}),
		memoryRecord("brand-b", "theirs close", []float64{1, 0.05}),
	}

	ranked := rankBySimilarity("brand-a", records, []float64{1, 0}, 0, 10)
	if len(ranked) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(ranked))
	}
	for _, match := range ranked {
		if match.BrandID != "brand-a" {
			t.Errorf("Record %q belongs to brand %q", match.Text, match.BrandID)
		}
	}
}

type outageEmbedder struct{}

func (outageEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return nil, &EmbeddingError{StatusCode: 503, Message: "service unavailable"}
}

func TestSearchMemoryDegradesOnEmbeddingOutage(t *testing.T) {
	service := &MemoryService{embedder: outageEmbedder{}}

	matches, err := service.SearchMemory(context.Background(), "brand-1", "launch plans", 0, 10)
	if err != nil {
		t.Fatalf("Expected degraded search, got error: %v", err)
	}
	if matches == nil {
		t.Fatal("Expected an empty slice, got nil")
	}
	if len(matches) != 0 {
		t.Errorf("Expected no matches during an outage, got %d", len(matches))
	}
}

func TestMemoryBrandFilterPinsBrand(t *testing.T) {
	filter := memoryBrandFilter("brand-a")
	if len(filter) != 1 {
		t.Fatalf("Expected a single-key filter, got %v", filter)
	}
	if filter["brandId"] != "brand-a" {
		t.Errorf("Expected brandId pinned to brand-a, got %v", filter["brandId"])
	}
}
