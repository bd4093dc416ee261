package analysis

import (
	"regexp"
	"strings"

	"brandintel/internal/models"
)

var hashtagPattern = regexp.MustCompile(`#[\p{L}0-9_]+`)

// buildHashtagAnalysis computes a lower-cased hashtag frequency map
func buildHashtagAnalysis(items []models.ContentItem) models.HashtagAnalysis {
	analysis := models.HashtagAnalysis{
		Frequencies: []models.WordFrequency{},
	}

	counts := make(map[string]int)
	for _, item := range items {
		for _, tag := range hashtagPattern.FindAllString(item.Text, -1) {
			counts[strings.ToLower(tag)]++
			analysis.TotalTags++
		}
	}

	analysis.Frequencies = topFrequencies(counts, len(counts))
	return analysis
}
