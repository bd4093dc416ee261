package analysis

import (
	"testing"
	"time"

	"brandintel/internal/models"
)

// TestBuildProfileEmptyCorpus verifies the engine returns a fully-typed
// zero-valued profile for a brand with no content yet
func TestBuildProfileEmptyCorpus(t *testing.T) {
	profile := BuildProfile(nil)

	if profile.ItemCount != 0 {
		t.Errorf("Expected item count 0, got %d", profile.ItemCount)
	}
	if profile.Sentiment.Score != 0 {
		t.Errorf("Expected sentiment score 0, got %v", profile.Sentiment.Score)
	}
	if profile.Sentiment.Volatility != 0 || profile.Sentiment.Controversy != 0 {
		t.Errorf("Expected zero volatility/controversy, got %v/%v",
			profile.Sentiment.Volatility, profile.Sentiment.Controversy)
	}
	if profile.Lexical.EmojiRate != 0 || profile.Lexical.HedgingRate != 0 ||
		profile.Lexical.ConvictionRate != 0 || profile.Lexical.JargonScore != 0 {
		t.Error("Expected all lexical rates to be 0 for empty corpus")
	}
	if profile.Lexical.ProfanityLevel != models.ProfanityNone {
		t.Errorf("Expected profanity level none, got %q", profile.Lexical.ProfanityLevel)
	}
	if len(profile.Lexical.TopUnigrams) != 0 || len(profile.Lexical.TopBigrams) != 0 {
		t.Error("Expected empty frequency lists")
	}
	if profile.Lexical.TopUnigrams == nil || profile.Lexical.TopBigrams == nil {
		t.Error("Expected frequency lists to be empty slices, not nil")
	}
	if len(profile.PostingPatterns.HourCounts) != 24 || len(profile.PostingPatterns.WeekdayCounts) != 7 {
		t.Error("Expected full hour and weekday buckets even when empty")
	}
	if profile.ContentMix.EngagementRate != 0 {
		t.Errorf("Expected zero engagement rate, got %v", profile.ContentMix.EngagementRate)
	}
	if profile.Topics.Topics == nil {
		t.Error("Expected topic distribution with a valid empty shape")
	}
	if len(profile.Hashtags.Frequencies) != 0 || profile.Hashtags.TotalTags != 0 {
		t.Error("Expected empty hashtag analysis")
	}
}

// TestSentimentScore verifies the normalized polarity score
func TestSentimentScore(t *testing.T) {
	tests := []struct {
		name     string
		texts    []string
		expected float64
	}{
		{
			name:     "All positive",
			texts:    []string{"amazing great awesome"},
			expected: 1,
		},
		{
			name:     "All negative",
			texts:    []string{"terrible awful worst"},
			expected: -1,
		},
		{
			name:     "Balanced",
			texts:    []string{"great launch terrible timing"},
			expected: 0,
		},
		{
			name:     "Neutral text scores zero",
			texts:    []string{"the quarterly report is published"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := buildSentimentProfile(itemsFromTexts(tt.texts...))
			if profile.Score != tt.expected {
				t.Errorf("Expected score %v, got %v", tt.expected, profile.Score)
			}
		})
	}
}

// TestSentimentClamped verifies derived heuristics stay in [0,1]
func TestSentimentClamped(t *testing.T) {
	items := itemsFromTexts("fuck shit awful terrible worst hate scam fail broken disaster")

	profile := buildSentimentProfile(items)

	if profile.Volatility < 0 || profile.Volatility > 1 {
		t.Errorf("Volatility out of range: %v", profile.Volatility)
	}
	if profile.Controversy < 0 || profile.Controversy > 1 {
		t.Errorf("Controversy out of range: %v", profile.Controversy)
	}
}

// TestPostingPatterns verifies hour and weekday bucketing
func TestPostingPatterns(t *testing.T) {
	// Three posts at 9:00 UTC on Mondays, one at 17:00 on a Friday
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // a Monday
	friday := time.Date(2026, 3, 6, 17, 0, 0, 0, time.UTC)

	items := []models.ContentItem{
		{Timestamp: monday},
		{Timestamp: monday.AddDate(0, 0, 7)},
		{Timestamp: monday.AddDate(0, 0, 14)},
		{Timestamp: friday},
	}

	patterns := buildPostingPatterns(items)

	if patterns.HourCounts[9] != 3 || patterns.HourCounts[17] != 1 {
		t.Errorf("Unexpected hour counts: 9h=%d 17h=%d", patterns.HourCounts[9], patterns.HourCounts[17])
	}
	if len(patterns.PeakHours) != 1 || patterns.PeakHours[0] != 9 {
		t.Errorf("Expected peak hour [9], got %v", patterns.PeakHours)
	}
	if len(patterns.PeakWeekdays) != 1 || patterns.PeakWeekdays[0] != "Monday" {
		t.Errorf("Expected peak weekday [Monday], got %v", patterns.PeakWeekdays)
	}
}

// TestHashtagFrequencies verifies lower-cased hashtag counting
func TestHashtagFrequencies(t *testing.T) {
	items := itemsFromTexts(
		"launch day #Web3 #launch",
		"still going #web3",
	)

	analysis := buildHashtagAnalysis(items)

	if analysis.TotalTags != 3 {
		t.Errorf("Expected 3 total tags, got %d", analysis.TotalTags)
	}
	if len(analysis.Frequencies) != 2 {
		t.Fatalf("Expected 2 distinct tags, got %v", analysis.Frequencies)
	}
	if analysis.Frequencies[0].Word != "#web3" || analysis.Frequencies[0].Count != 2 {
		t.Errorf("Expected #web3 x2 first, got %+v", analysis.Frequencies[0])
	}
}

// TestContentMix verifies media ratios and the engagement rate
func TestContentMix(t *testing.T) {
	items := []models.ContentItem{
		{
			ContentType: models.ContentTypePost,
			Media:       []models.MediaRef{{Type: "image", URL: "https://cdn.example.com/a.png"}},
			Metrics:     models.EngagementMetrics{Likes: 10, Shares: 5, Comments: 5},
		},
		{
			ContentType: models.ContentTypeVideo,
			Metrics:     models.EngagementMetrics{Likes: 20},
		},
		{
			ContentType: models.ContentTypePost,
			Metrics:     models.EngagementMetrics{Comments: 0},
		},
		{
			ContentType: models.ContentTypePage,
		},
	}

	mix := buildContentMix(items)

	if mix.ImageRatio != 0.25 || mix.VideoRatio != 0.25 || mix.TextOnlyRatio != 0.5 {
		t.Errorf("Unexpected ratios: image=%v video=%v text=%v",
			mix.ImageRatio, mix.VideoRatio, mix.TextOnlyRatio)
	}
	if mix.EngagementRate != 10 {
		t.Errorf("Expected engagement rate 10, got %v", mix.EngagementRate)
	}
}

// TestBuildProfileDeterministic verifies two runs over the same corpus agree
func TestBuildProfileDeterministic(t *testing.T) {
	items := itemsFromTexts(
		"big launch today 🚀 #web3 @partner",
		"@partner thanks for the amazing support",
		"maybe we ship the next drop friday #launch",
	)

	first := BuildProfile(items)
	second := BuildProfile(items)

	if first.Lexical.ProfanityLevel != second.Lexical.ProfanityLevel ||
		first.Sentiment.Score != second.Sentiment.Score ||
		len(first.Lexical.TopUnigrams) != len(second.Lexical.TopUnigrams) {
		t.Error("Expected deterministic profiles for identical input")
	}
	for i := range first.Lexical.TopUnigrams {
		if first.Lexical.TopUnigrams[i] != second.Lexical.TopUnigrams[i] {
			t.Errorf("Unigram order diverged at %d: %+v vs %+v",
				i, first.Lexical.TopUnigrams[i], second.Lexical.TopUnigrams[i])
		}
	}
}
