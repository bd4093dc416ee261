package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"brandintel/internal/analysis"
	"brandintel/internal/models"
)

const (
	// profileCorpusLimit caps how many items feed one profile computation
	profileCorpusLimit = 1000

	// synthesizerSampleCount is how many recent texts the qualitative
	// collaborator receives alongside the quantitative profile
	synthesizerSampleCount = 25
)

// Synthesizer produces the qualitative profile sections (voice, positioning,
// templates) from the quantitative profile and sample texts. Implementations
// call an external model; the profile pipeline itself never does.
type Synthesizer interface {
	SynthesizeProfile(ctx context.Context, ownerID string, profile models.BrandProfile, samples []string) (models.QualitativeProfile, error)
}

// ContentLister provides the corpus a profile computation reads
type ContentLister interface {
	ItemsForOwner(ctx context.Context, ownerID string, limit int) ([]models.ContentItem, error)
}

// ProfileService generates brand profiles: quantitative sections from the
// stored corpus, qualitative sections via the synthesizer, cached in Redis.
type ProfileService struct {
	store       ContentLister
	redis       *RedisService
	synthesizer Synthesizer
	cacheTTL    time.Duration
}

// NewProfileService creates a new profile service. redis and synthesizer may
// be nil; both degrade gracefully.
func NewProfileService(store ContentLister, redis *RedisService, synthesizer Synthesizer, cacheTTL time.Duration) *ProfileService {
	return &ProfileService{
		store:       store,
		redis:       redis,
		synthesizer: synthesizer,
		cacheTTL:    cacheTTL,
	}
}

// GenerateBrandProfile computes (or returns the cached) profile for a brand.
// A brand with no content yet gets a valid zero-valued profile, not an error.
func (s *ProfileService) GenerateBrandProfile(ctx context.Context, ownerID string, forceRefresh bool) (*models.BrandProfile, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner ID is required")
	}

	if !forceRefresh {
		cached, err := s.redis.GetCachedProfile(ctx, ownerID)
		if err != nil {
			log.Printf("⚠️ [PROFILE] Cache read failed for %s: %v", ownerID, err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	items, err := s.store.ItemsForOwner(ctx, ownerID, profileCorpusLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load content for profile: %w", err)
	}

	profile := analysis.BuildProfile(items)
	profile.OwnerID = ownerID
	profile.GeneratedAt = time.Now().UTC()

	if s.synthesizer != nil && len(items) > 0 {
		qualitative, err := s.synthesizer.SynthesizeProfile(ctx, ownerID, profile, sampleTexts(items, synthesizerSampleCount))
		if err != nil {
			// Qualitative synthesis is best-effort; the quantitative profile
			// still ships without it
			log.Printf("⚠️ [PROFILE] Synthesis failed for %s: %v", ownerID, err)
		} else {
			profile.Qualitative = qualitative
		}
	}

	if err := s.redis.CacheProfile(ctx, &profile, s.cacheTTL); err != nil {
		log.Printf("⚠️ [PROFILE] Cache write failed for %s: %v", ownerID, err)
	}

	log.Printf("📊 [PROFILE] Generated profile for %s over %d items", ownerID, profile.ItemCount)
	return &profile, nil
}

// InvalidateProfile drops the cached profile after new content arrives
func (s *ProfileService) InvalidateProfile(ctx context.Context, ownerID string) {
	if err := s.redis.InvalidateProfile(ctx, ownerID); err != nil {
		log.Printf("⚠️ [PROFILE] Cache invalidation failed for %s: %v", ownerID, err)
	}
}

// sampleTexts picks the newest non-empty texts for the synthesizer
func sampleTexts(items []models.ContentItem, max int) []string {
	samples := make([]string, 0, max)
	for _, item := range items {
		if item.Text == "" {
			continue
		}
		samples = append(samples, item.Text)
		if len(samples) >= max {
			break
		}
	}
	return samples
}
