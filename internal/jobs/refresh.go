package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"brandintel/internal/fetchers"
	"brandintel/internal/logging"

	"github.com/go-co-op/gocron/v2"
)

// OwnerLister enumerates the brands the refresh sweep covers
type OwnerLister interface {
	OwnersWithSources(ctx context.Context) ([]string, error)
}

// ProfileInvalidator drops a brand's cached profile after new content lands
type ProfileInvalidator interface {
	InvalidateProfile(ctx context.Context, ownerID string)
}

// RefreshScheduler periodically re-fetches every connected source. One
// brand's failures never stop the sweep; each source's outcome is already
// isolated inside the fetch service.
type RefreshScheduler struct {
	scheduler gocron.Scheduler
	fetch     *fetchers.Service
	owners    OwnerLister
	profiles  ProfileInvalidator
	interval  time.Duration
}

// NewRefreshScheduler creates the periodic refresh scheduler
func NewRefreshScheduler(fetch *fetchers.Service, owners OwnerLister, profiles ProfileInvalidator, interval time.Duration) (*RefreshScheduler, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &RefreshScheduler{
		scheduler: scheduler,
		fetch:     fetch,
		owners:    owners,
		profiles:  profiles,
		interval:  interval,
	}, nil
}

// Start registers the sweep job and starts the scheduler
func (s *RefreshScheduler) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.runSweep),
		gocron.WithName("source-refresh"),
	)
	if err != nil {
		return fmt.Errorf("failed to register refresh job: %w", err)
	}

	s.scheduler.Start()
	log.Printf("⏰ [REFRESH] Source refresh scheduled every %v", s.interval)
	return nil
}

// Shutdown stops the scheduler and waits for a running sweep to finish
func (s *RefreshScheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}

// runSweep fetches every brand's sources once
func (s *RefreshScheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	owners, err := s.owners.OwnersWithSources(ctx)
	if err != nil {
		log.Printf("❌ [REFRESH] Failed to list brands: %v", err)
		return
	}

	log.Printf("⏰ [REFRESH] Sweeping %d brands", len(owners))

	for _, ownerID := range owners {
		brandLog := logging.WithBrand(ownerID)
		results := s.fetch.FetchAll(ctx, ownerID)

		newItems := 0
		failed := 0
		for _, result := range results {
			newItems += result.Count
			if result.Err() != nil {
				failed++
			}
		}

		if newItems > 0 {
			s.profiles.InvalidateProfile(ctx, ownerID)
		}
		if failed > 0 {
			brandLog.Warn("Refresh finished with failures", "new_items", newItems, "failed_sources", failed)
		} else {
			brandLog.Info("Refresh finished", "new_items", newItems)
		}

		if ctx.Err() != nil {
			log.Printf("⚠️ [REFRESH] Sweep aborted: %v", ctx.Err())
			return
		}
	}
}
