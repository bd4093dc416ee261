package models

import "time"

// Profanity levels
const (
	ProfanityNone   = "none"
	ProfanityLow    = "low"
	ProfanityMedium = "medium"
	ProfanityHigh   = "high"
)

// BrandProfile is the synthesized document for a brand: a quantitative
// section computed deterministically from the content corpus, and a
// qualitative section produced by an external synthesis pass. Regenerated on
// demand from the current ContentItem set; never incrementally updated.
type BrandProfile struct {
	OwnerID     string    `json:"owner_id"`
	GeneratedAt time.Time `json:"generated_at"`
	ItemCount   int       `json:"item_count"`

	Lexical         LexicalProfile    `json:"lexical"`
	Network         NetworkProfile    `json:"network"`
	Sentiment       SentimentProfile  `json:"sentiment"`
	PostingPatterns PostingPatterns   `json:"posting_patterns"`
	Hashtags        HashtagAnalysis   `json:"hashtags"`
	ContentMix      ContentMix        `json:"content_mix"`
	Topics          TopicDistribution `json:"topics"`

	Qualitative QualitativeProfile `json:"qualitative"`
}

// WordFrequency is one entry in a frequency list
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// LexicalProfile captures vocabulary signals
type LexicalProfile struct {
	TopUnigrams    []WordFrequency `json:"top_unigrams"`
	TopBigrams     []WordFrequency `json:"top_bigrams"`
	JargonScore    float64         `json:"jargon_score"` // 0-10
	EmojiRate      float64         `json:"emoji_rate"`   // fraction of items with at least one emoji
	ProfanityLevel string          `json:"profanity_level"`
	HedgingRate    float64         `json:"hedging_rate"`    // lexicon hits / total words
	ConvictionRate float64         `json:"conviction_rate"` // lexicon hits / total words
}

// NetworkProfile captures @mention interaction signals
type NetworkProfile struct {
	MentionCounts     []WordFrequency `json:"mention_counts"` // above the occurrence threshold
	MostInteracted    []string        `json:"most_interacted"`
	ReplyTargets      []string        `json:"reply_targets"`
	EcosystemClusters []string        `json:"ecosystem_clusters"`
}

// SentimentProfile captures bag-of-words polarity
type SentimentProfile struct {
	Score         float64 `json:"score"` // (pos-neg)/(pos+neg), 0 when both 0
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
	Volatility    float64 `json:"volatility"`  // 0-1
	Controversy   float64 `json:"controversy"` // 0-1
}

// PostingPatterns buckets item timestamps into posting windows
type PostingPatterns struct {
	HourCounts    []int    `json:"hour_counts"`    // 24 buckets
	WeekdayCounts []int    `json:"weekday_counts"` // 7 buckets, Sunday first
	PeakHours     []int    `json:"peak_hours"`
	PeakWeekdays  []string `json:"peak_weekdays"`
}

// HashtagAnalysis is a lower-cased hashtag frequency map
type HashtagAnalysis struct {
	Frequencies []WordFrequency `json:"frequencies"`
	TotalTags   int             `json:"total_tags"`
}

// ContentMix captures media-type ratios and aggregate engagement
type ContentMix struct {
	ImageRatio     float64 `json:"image_ratio"`
	VideoRatio     float64 `json:"video_ratio"`
	TextOnlyRatio  float64 `json:"text_only_ratio"`
	EngagementRate float64 `json:"engagement_rate"` // (likes+shares+comments)/items
}

// TopicWeight is one topic with its relative weight
type TopicWeight struct {
	Topic  string  `json:"topic"`
	Weight float64 `json:"weight"`
}

// TopicDistribution is a coarse topic shape derived from dominant hashtags
// and frequent words, with weights normalized to sum to 1.
type TopicDistribution struct {
	Topics []TopicWeight `json:"topics"`
}

// QualitativeProfile is produced by the external synthesis collaborator
type QualitativeProfile struct {
	Voice       string   `json:"voice"`
	Positioning string   `json:"positioning"`
	Templates   []string `json:"templates,omitempty"`
	SafetyNotes []string `json:"safety_notes,omitempty"`
}
