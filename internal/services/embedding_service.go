package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// EmbeddingError reports a failed embedding call. Callers treat it as a
// degradation signal, not a hard failure: memory ingestion logs and skips,
// it never takes a fetch or profile request down.
type EmbeddingError struct {
	StatusCode int
	Message    string
}

func (e *EmbeddingError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("embedding request failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("embedding request failed: %s", e.Message)
}

// EmbeddingService calls an OpenAI-compatible embeddings endpoint
type EmbeddingService struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	model   string
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewEmbeddingService creates an embedding client against the given base URL
func NewEmbeddingService(baseURL, apiKey, model string) *EmbeddingService {
	return &EmbeddingService{
		client:  resty.New().SetTimeout(60 * time.Second),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// Embed returns the embedding vector for one text
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, &EmbeddingError{Message: "empty response"}
	}
	return vectors[0], nil
}

// EmbedBatch returns one vector per input text, in input order
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var parsed embeddingResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(embeddingRequest{Model: s.model, Input: texts}).
		SetResult(&parsed).
		SetError(&parsed).
		Post(s.baseURL + "/embeddings")

	if err != nil {
		return nil, &EmbeddingError{Message: err.Error()}
	}
	if resp.StatusCode() != 200 {
		message := "unexpected status"
		if parsed.Error != nil {
			message = parsed.Error.Message
		}
		return nil, &EmbeddingError{StatusCode: resp.StatusCode(), Message: message}
	}
	if len(parsed.Data) != len(texts) {
		return nil, &EmbeddingError{Message: fmt.Sprintf("expected %d vectors, got %d", len(texts), len(parsed.Data))}
	}

	vectors := make([][]float64, len(texts))
	for _, entry := range parsed.Data {
		if entry.Index < 0 || entry.Index >= len(vectors) {
			return nil, &EmbeddingError{Message: fmt.Sprintf("vector index %d out of range", entry.Index)}
		}
		vectors[entry.Index] = entry.Embedding
	}
	return vectors, nil
}
