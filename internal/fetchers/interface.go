package fetchers

import (
	"context"

	"brandintel/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fetcher retrieves a bounded batch of recent external items for one source
// and normalizes them into ContentItems. One implementation per source type;
// each maps its vendor's native record shape into the canonical item at this
// boundary.
type Fetcher interface {
	SourceType() string
	Fetch(ctx context.Context, source models.BrandSource, credential string, limit int) ([]models.ContentItem, error)
}

// ContentSaver persists normalized items with dedup-on-write
type ContentSaver interface {
	SaveItems(ctx context.Context, items []models.ContentItem) (int, error)
}

// SourceDirectory exposes the brand source records a fetch run needs
type SourceDirectory interface {
	SourcesForOwner(ctx context.Context, ownerID, sourceType string) ([]models.BrandSource, error)
	DecryptCredential(source *models.BrandSource) (string, error)
	MarkError(ctx context.Context, id primitive.ObjectID, message string) error
	MarkFetched(ctx context.Context, id primitive.ObjectID, itemCount int) error
}
