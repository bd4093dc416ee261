package analysis

import (
	"sort"
	"time"

	"brandintel/internal/models"
)

// buildPostingPatterns buckets item timestamps by hour-of-day and weekday.
// The highest-frequency windows feed the downstream content-calendar
// recommendation; this section only surfaces them.
func buildPostingPatterns(items []models.ContentItem) models.PostingPatterns {
	patterns := models.PostingPatterns{
		HourCounts:    make([]int, 24),
		WeekdayCounts: make([]int, 7),
		PeakHours:     []int{},
		PeakWeekdays:  []string{},
	}

	for _, item := range items {
		if item.Timestamp.IsZero() {
			continue
		}
		t := item.Timestamp.UTC()
		patterns.HourCounts[t.Hour()]++
		patterns.WeekdayCounts[int(t.Weekday())]++
	}

	patterns.PeakHours = peakIndexes(patterns.HourCounts)

	for _, day := range peakIndexes(patterns.WeekdayCounts) {
		patterns.PeakWeekdays = append(patterns.PeakWeekdays, time.Weekday(day).String())
	}

	return patterns
}

// peakIndexes returns the bucket indexes holding the maximum non-zero count
func peakIndexes(counts []int) []int {
	max := 0
	for _, count := range counts {
		if count > max {
			max = count
		}
	}

	peaks := []int{}
	if max == 0 {
		return peaks
	}
	for i, count := range counts {
		if count == max {
			peaks = append(peaks, i)
		}
	}
	sort.Ints(peaks)
	return peaks
}
