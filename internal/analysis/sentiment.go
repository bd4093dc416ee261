package analysis

import "brandintel/internal/models"

// buildSentimentProfile computes bag-of-words polarity over the corpus.
// Score is (positive - negative) / (positive + negative), defined as 0 when
// both counts are 0. Volatility and controversy are derived heuristics
// blending profanity and negative-word density, clamped to [0,1].
func buildSentimentProfile(items []models.ContentItem) models.SentimentProfile {
	profile := models.SentimentProfile{}

	totalWords := 0
	positive := 0
	negative := 0
	profanity := 0

	for _, item := range items {
		for _, token := range tokenize(item.Text) {
			totalWords++
			if positiveLexicon[token] {
				positive++
			}
			if negativeLexicon[token] {
				negative++
			}
			if profanityLexicon[token] {
				profanity++
			}
		}
	}

	profile.PositiveCount = positive
	profile.NegativeCount = negative

	if positive+negative > 0 {
		profile.Score = float64(positive-negative) / float64(positive+negative)
	}

	if totalWords > 0 {
		negativeDensity := float64(negative) / float64(totalWords)
		profanityDensity := float64(profanity) / float64(totalWords)

		profile.Volatility = clamp01(negativeDensity*8 + profanityDensity*12)
		profile.Controversy = clamp01(negativeDensity*4 + profanityDensity*20)
	}

	return profile
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
