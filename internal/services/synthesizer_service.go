package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"brandintel/internal/models"

	"github.com/go-resty/resty/v2"
)

// ChatSynthesizer implements Synthesizer against an OpenAI-compatible chat
// completions endpoint. It sends the quantitative profile plus sample texts
// and expects a JSON object back with the qualitative fields.
type ChatSynthesizer struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	model   string
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const synthesisSystemPrompt = `You are a brand voice analyst. Given a quantitative profile of a brand's published content and sample texts, respond with a JSON object with exactly these keys:
"voice" (string, 2-3 sentences describing tone and style),
"positioning" (string, 1-2 sentences on how the brand positions itself),
"templates" (array of strings, reusable post templates in the brand's voice),
"safety_notes" (array of strings, topics or phrasings the brand avoids).
Respond with JSON only.`

// NewChatSynthesizer creates a synthesizer against the given chat API base
func NewChatSynthesizer(baseURL, apiKey, model string) *ChatSynthesizer {
	return &ChatSynthesizer{
		client:  resty.New().SetTimeout(120 * time.Second),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// SynthesizeProfile asks the model for the qualitative profile sections
func (s *ChatSynthesizer) SynthesizeProfile(ctx context.Context, ownerID string, profile models.BrandProfile, samples []string) (models.QualitativeProfile, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return models.QualitativeProfile{}, fmt.Errorf("failed to marshal profile: %w", err)
	}

	var prompt strings.Builder
	prompt.WriteString("Quantitative profile:\n")
	prompt.Write(profileJSON)
	prompt.WriteString("\n\nSample texts:\n")
	for i, sample := range samples {
		prompt.WriteString(fmt.Sprintf("%d. %s\n", i+1, sample))
	}

	request := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: synthesisSystemPrompt},
			{Role: "user", Content: prompt.String()},
		},
		Temperature: 0.4,
	}
	request.ResponseFormat = &struct {
		Type string `json:"type"`
	}{Type: "json_object"}

	var parsed chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&parsed).
		SetError(&parsed).
		Post(s.baseURL + "/chat/completions")

	if err != nil {
		return models.QualitativeProfile{}, fmt.Errorf("synthesis request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		message := "unexpected status"
		if parsed.Error != nil {
			message = parsed.Error.Message
		}
		return models.QualitativeProfile{}, fmt.Errorf("synthesis request failed (HTTP %d): %s", resp.StatusCode(), message)
	}
	if len(parsed.Choices) == 0 {
		return models.QualitativeProfile{}, fmt.Errorf("synthesis response has no choices")
	}

	return parseQualitative(parsed.Choices[0].Message.Content)
}

// parseQualitative decodes the model's JSON reply, tolerating code fences
func parseQualitative(content string) (models.QualitativeProfile, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var qualitative models.QualitativeProfile
	if err := json.Unmarshal([]byte(trimmed), &qualitative); err != nil {
		return models.QualitativeProfile{}, fmt.Errorf("failed to parse synthesis reply: %w", err)
	}
	return qualitative, nil
}
