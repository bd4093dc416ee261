package analysis

import (
	"strings"

	"brandintel/internal/models"
)

const maxTopics = 8

// buildTopicDistribution derives a coarse topic shape from the corpus's
// dominant hashtags and frequent words. Hashtags are the stronger signal and
// are weighted double. Weights are normalized to sum to 1.
func buildTopicDistribution(items []models.ContentItem) models.TopicDistribution {
	scores := make(map[string]int)

	for _, item := range items {
		for _, tag := range hashtagPattern.FindAllString(item.Text, -1) {
			topic := strings.ToLower(strings.TrimPrefix(tag, "#"))
			scores[topic] += 2
		}
		for _, token := range tokenize(item.Text) {
			if len(token) < minTokenLength || stopwords[token] {
				continue
			}
			scores[token]++
		}
	}

	top := topFrequencies(scores, maxTopics)

	total := 0
	for _, entry := range top {
		total += entry.Count
	}

	distribution := models.TopicDistribution{Topics: []models.TopicWeight{}}
	if total == 0 {
		return distribution
	}

	for _, entry := range top {
		distribution.Topics = append(distribution.Topics, models.TopicWeight{
			Topic:  entry.Word,
			Weight: float64(entry.Count) / float64(total),
		})
	}
	return distribution
}
