package analysis

import "brandintel/internal/models"

// buildContentMix computes media-type ratios and the aggregate engagement
// rate, guarding every division against an empty corpus.
func buildContentMix(items []models.ContentItem) models.ContentMix {
	mix := models.ContentMix{}
	if len(items) == 0 {
		return mix
	}

	imageItems := 0
	videoItems := 0
	textOnlyItems := 0
	var engagement int64

	for _, item := range items {
		engagement += item.Metrics.Likes + item.Metrics.Shares + item.Metrics.Comments

		hasImage := false
		hasVideo := item.ContentType == models.ContentTypeVideo
		for _, media := range item.Media {
			switch media.Type {
			case "image":
				hasImage = true
			case "video":
				hasVideo = true
			}
		}

		switch {
		case hasVideo:
			videoItems++
		case hasImage:
			imageItems++
		default:
			textOnlyItems++
		}
	}

	total := float64(len(items))
	mix.ImageRatio = float64(imageItems) / total
	mix.VideoRatio = float64(videoItems) / total
	mix.TextOnlyRatio = float64(textOnlyItems) / total
	mix.EngagementRate = float64(engagement) / total

	return mix
}
