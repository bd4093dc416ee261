package analysis

import (
	"sort"
	"strings"
	"unicode"

	"brandintel/internal/models"

	"github.com/forPelevin/gomoji"
)

const (
	topUnigramCount = 20
	topBigramCount  = 10
	minTokenLength  = 3

	// Profanity bucket thresholds over the whole corpus: 0 none, 1-5 low,
	// 6-10 medium, >10 high.
	profanityLowMax    = 5
	profanityMediumMax = 10
)

// tokenize lower-cases text and splits it into word tokens. Mentions and
// hashtags are handled by their own extractors; their sigils are dropped here
// so the words still count toward lexical totals.
func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// buildLexicalProfile computes the lexical section over the corpus
func buildLexicalProfile(items []models.ContentItem) models.LexicalProfile {
	profile := models.LexicalProfile{
		TopUnigrams:    []models.WordFrequency{},
		TopBigrams:     []models.WordFrequency{},
		ProfanityLevel: models.ProfanityNone,
	}

	unigramCounts := make(map[string]int)
	bigramCounts := make(map[string]int)

	totalWords := 0
	jargonHits := 0
	hedgingHits := 0
	convictionHits := 0
	profanityHits := 0
	itemsWithEmoji := 0

	for _, item := range items {
		tokens := tokenize(item.Text)
		totalWords += len(tokens)

		for i, token := range tokens {
			if jargonLexicon[token] {
				jargonHits++
			}
			if hedgingLexicon[token] {
				hedgingHits++
			}
			if convictionLexicon[token] {
				convictionHits++
			}
			if profanityLexicon[token] {
				profanityHits++
			}

			if len(token) >= minTokenLength {
				unigramCounts[token]++
			}
			if i > 0 && len(tokens[i-1]) >= minTokenLength && len(token) >= minTokenLength {
				bigramCounts[tokens[i-1]+" "+token]++
			}
		}

		if containsEmoji(item.Text) {
			itemsWithEmoji++
		}
	}

	profile.TopUnigrams = topFrequencies(unigramCounts, topUnigramCount)
	profile.TopBigrams = topFrequencies(bigramCounts, topBigramCount)
	profile.ProfanityLevel = profanityBucket(profanityHits)

	if totalWords > 0 {
		// Jargon density as a percentage of all words, capped to the 0-10 scale
		density := float64(jargonHits) / float64(totalWords) * 100
		if density > 10 {
			density = 10
		}
		profile.JargonScore = density

		profile.HedgingRate = float64(hedgingHits) / float64(totalWords)
		profile.ConvictionRate = float64(convictionHits) / float64(totalWords)
	}

	if len(items) > 0 {
		profile.EmojiRate = float64(itemsWithEmoji) / float64(len(items))
	}

	return profile
}

// profanityBucket maps a corpus-wide profanity match count to a level
func profanityBucket(hits int) string {
	switch {
	case hits == 0:
		return models.ProfanityNone
	case hits <= profanityLowMax:
		return models.ProfanityLow
	case hits <= profanityMediumMax:
		return models.ProfanityMedium
	default:
		return models.ProfanityHigh
	}
}

// topFrequencies returns the n most frequent entries, ordered by count
// descending then word ascending so output is deterministic.
func topFrequencies(counts map[string]int, n int) []models.WordFrequency {
	frequencies := make([]models.WordFrequency, 0, len(counts))
	for word, count := range counts {
		frequencies = append(frequencies, models.WordFrequency{Word: word, Count: count})
	}

	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return frequencies[i].Word < frequencies[j].Word
	})

	if len(frequencies) > n {
		frequencies = frequencies[:n]
	}
	return frequencies
}

// containsEmoji reports whether the text contains at least one emoji glyph
func containsEmoji(text string) bool {
	return gomoji.ContainsEmoji(text)
}
