// Package analysis computes the quantitative sections of a brand profile
// from a content corpus. Everything here is pure and deterministic: no
// network calls, no model calls, no clock reads beyond the item timestamps.
//
// Given zero items every section still comes back fully typed with zero and
// empty values, so an empty corpus renders as "collecting data" downstream
// rather than an error.
package analysis

import "brandintel/internal/models"

// BuildProfile computes all quantitative profile sections for one brand's
// content items. The qualitative section is left in its valid empty shape for
// the external synthesis pass to fill.
func BuildProfile(items []models.ContentItem) models.BrandProfile {
	return models.BrandProfile{
		ItemCount:       len(items),
		Lexical:         buildLexicalProfile(items),
		Network:         buildNetworkProfile(items),
		Sentiment:       buildSentimentProfile(items),
		PostingPatterns: buildPostingPatterns(items),
		Hashtags:        buildHashtagAnalysis(items),
		ContentMix:      buildContentMix(items),
		Topics:          buildTopicDistribution(items),
		Qualitative:     models.QualitativeProfile{},
	}
}
