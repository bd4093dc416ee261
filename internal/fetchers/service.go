package fetchers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"brandintel/internal/models"

	"github.com/sirupsen/logrus"
)

// maxParallelSources bounds how many sources are fetched concurrently
const maxParallelSources = 4

// Service coordinates fetch runs across a brand's connected sources.
// A failure in one source's fetch is caught and recorded per source and
// never cancels sibling fetches.
type Service struct {
	saver     ContentSaver
	directory SourceDirectory
	fetchers  map[string]Fetcher
	batchSize int
}

// SourceResult reports one source's outcome within a fetch run
type SourceResult struct {
	SourceID    string `json:"source_id"`
	SourceType  string `json:"source_type"`
	HandleOrURL string `json:"handle_or_url"`
	Count       int    `json:"count"`
	Error       string `json:"error,omitempty"`

	err error
}

// Err returns the underlying error for a failed source, nil on success
func (r SourceResult) Err() error {
	return r.err
}

// NewService creates a fetch service over the given stores
func NewService(saver ContentSaver, directory SourceDirectory, batchSize int) *Service {
	return &Service{
		saver:     saver,
		directory: directory,
		fetchers:  make(map[string]Fetcher),
		batchSize: batchSize,
	}
}

// Register adds a fetcher for its source type
func (s *Service) Register(fetcher Fetcher) {
	s.fetchers[fetcher.SourceType()] = fetcher
	logrus.Infof("Registered %s fetcher", fetcher.SourceType())
}

// FetchSourceContent fetches recent content for every connected source of the
// given type and returns the number of items ingested. Per-item parse
// failures never surface here; a typed error is returned only when the whole
// batch is fatal (no usable source, or every source failed).
func (s *Service) FetchSourceContent(ctx context.Context, ownerID, sourceType string) (int, error) {
	if _, ok := s.fetchers[sourceType]; !ok {
		return 0, fmt.Errorf("no fetcher registered for source type %q", sourceType)
	}

	sources, err := s.directory.SourcesForOwner(ctx, ownerID, sourceType)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s sources: %w", sourceType, err)
	}
	if len(sources) == 0 {
		return 0, &AuthError{SourceType: sourceType, Reason: "no connected source for this brand"}
	}

	results := s.fetchSources(ctx, sources)

	total := 0
	failed := 0
	var firstErr error
	for _, result := range results {
		total += result.Count
		if result.err != nil {
			failed++
			if firstErr == nil {
				firstErr = result.err
			}
		}
	}

	// Partial success is success; only an all-sources failure is batch-fatal
	if failed == len(results) {
		return 0, firstErr
	}
	return total, nil
}

// FetchAll runs every registered fetcher over the brand's sources and
// reports each source's outcome independently.
func (s *Service) FetchAll(ctx context.Context, ownerID string) []SourceResult {
	var all []models.BrandSource
	for sourceType := range s.fetchers {
		sources, err := s.directory.SourcesForOwner(ctx, ownerID, sourceType)
		if err != nil {
			logrus.Errorf("Failed to load %s sources for %s: %v", sourceType, ownerID, err)
			continue
		}
		all = append(all, sources...)
	}

	return s.fetchSources(ctx, all)
}

// fetchSources fans out over sources with bounded parallelism
func (s *Service) fetchSources(ctx context.Context, sources []models.BrandSource) []SourceResult {
	results := make([]SourceResult, len(sources))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxParallelSources)

	for i := range sources {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			source := sources[i]
			count, err := s.fetchOne(ctx, source)

			result := SourceResult{
				SourceID:    source.ID.Hex(),
				SourceType:  source.SourceType,
				HandleOrURL: source.HandleOrURL,
				Count:       count,
				err:         err,
			}
			if err != nil {
				result.Error = err.Error()
			}
			results[i] = result
		}(i)
	}

	wg.Wait()
	return results
}

// fetchOne runs the full fetch pipeline for a single source: local expiry
// check, remote fetch with retry, normalization, dedup-on-write persistence.
func (s *Service) fetchOne(ctx context.Context, source models.BrandSource) (int, error) {
	log := logrus.WithFields(logrus.Fields{
		"source_id":   source.ID.Hex(),
		"source_type": source.SourceType,
		"handle":      source.HandleOrURL,
	})

	if source.Status != models.SourceStatusConnected {
		return 0, &AuthError{SourceType: source.SourceType, Reason: "source needs reconnection"}
	}

	fetcher, ok := s.fetchers[source.SourceType]
	if !ok {
		return 0, fmt.Errorf("no fetcher registered for source type %q", source.SourceType)
	}

	// Check expiry locally before any network call. An expired credential is
	// a hard stop: mark the source and let the user reconnect.
	if source.CredentialExpiry != nil && time.Now().After(*source.CredentialExpiry) {
		authErr := &AuthError{SourceType: source.SourceType, Reason: "credential expired"}
		if markErr := s.directory.MarkError(ctx, source.ID, authErr.Error()); markErr != nil {
			log.Errorf("Failed to mark source errored: %v", markErr)
		}
		return 0, authErr
	}

	credential, err := s.directory.DecryptCredential(&source)
	if err != nil {
		return 0, fmt.Errorf("failed to decrypt credential: %w", err)
	}

	var items []models.ContentItem
	err = withRetry(ctx, source.SourceType, func() error {
		var fetchErr error
		items, fetchErr = fetcher.Fetch(ctx, source, credential, s.batchSize)
		return fetchErr
	})
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			if markErr := s.directory.MarkError(ctx, source.ID, authErr.Error()); markErr != nil {
				log.Errorf("Failed to mark source errored: %v", markErr)
			}
		}
		log.Errorf("Fetch failed: %v", err)
		return 0, err
	}

	saved, err := s.saver.SaveItems(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("failed to persist items: %w", err)
	}

	if err := s.directory.MarkFetched(ctx, source.ID, saved); err != nil {
		log.Errorf("Failed to record fetch: %v", err)
	}

	log.Infof("Fetched %d items (%d new)", len(items), saved)
	return saved, nil
}
