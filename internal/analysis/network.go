package analysis

import (
	"regexp"
	"sort"
	"strings"

	"brandintel/internal/models"
)

const (
	// Mentions with fewer occurrences than this are one-off noise
	minMentionOccurrences = 3

	maxInteractedHandles = 10
	maxReplyTargets      = 5
)

var mentionPattern = regexp.MustCompile(`@[A-Za-z0-9_]+`)

// buildNetworkProfile extracts @handle interaction signals from the corpus
func buildNetworkProfile(items []models.ContentItem) models.NetworkProfile {
	profile := models.NetworkProfile{
		MentionCounts:     []models.WordFrequency{},
		MostInteracted:    []string{},
		ReplyTargets:      []string{},
		EcosystemClusters: []string{},
	}

	mentionCounts := make(map[string]int)
	replyCounts := make(map[string]int)

	for _, item := range items {
		for _, mention := range mentionPattern.FindAllString(item.Text, -1) {
			handle := strings.ToLower(mention)
			mentionCounts[handle]++
		}

		// A text that opens with a mention is reply-style
		trimmed := strings.TrimSpace(item.Text)
		if opening := mentionPattern.FindString(trimmed); opening != "" && strings.HasPrefix(trimmed, opening) {
			replyCounts[strings.ToLower(opening)]++
		}
	}

	// Drop one-off mentions below the occurrence threshold
	for handle, count := range mentionCounts {
		if count < minMentionOccurrences {
			delete(mentionCounts, handle)
		}
	}

	profile.MentionCounts = topFrequencies(mentionCounts, len(mentionCounts))

	for i, freq := range profile.MentionCounts {
		if i >= maxInteractedHandles {
			break
		}
		profile.MostInteracted = append(profile.MostInteracted, freq.Word)
	}

	// Reply targets come from the same counts, restricted to handles that
	// survive the threshold
	replyTargets := make([]string, 0, len(replyCounts))
	for handle := range replyCounts {
		if mentionCounts[handle] >= minMentionOccurrences {
			replyTargets = append(replyTargets, handle)
		}
	}
	sort.Slice(replyTargets, func(i, j int) bool {
		if replyCounts[replyTargets[i]] != replyCounts[replyTargets[j]] {
			return replyCounts[replyTargets[i]] > replyCounts[replyTargets[j]]
		}
		return replyTargets[i] < replyTargets[j]
	})
	if len(replyTargets) > maxReplyTargets {
		replyTargets = replyTargets[:maxReplyTargets]
	}
	profile.ReplyTargets = replyTargets

	profile.EcosystemClusters = clusterTags(mentionCounts)

	return profile
}

// clusterTags derives ecosystem tags from keywords inside frequent handles
func clusterTags(mentionCounts map[string]int) []string {
	seen := make(map[string]bool)
	for handle := range mentionCounts {
		bare := strings.TrimPrefix(handle, "@")
		for keyword, cluster := range ecosystemKeywords {
			if strings.Contains(bare, keyword) {
				seen[cluster] = true
			}
		}
	}

	clusters := make([]string, 0, len(seen))
	for cluster := range seen {
		clusters = append(clusters, cluster)
	}
	sort.Strings(clusters)
	return clusters
}
