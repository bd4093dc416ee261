package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"brandintel/internal/database"
	"brandintel/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentStoreService persists normalized content items with dedup-on-write.
// Items are append-only: a re-fetched item is recognized by its identity key
// and never duplicated or mutated.
type ContentStoreService struct {
	mongodb    *database.MongoDB
	collection *mongo.Collection
}

// NewContentStoreService creates a new content store service
func NewContentStoreService(mongodb *database.MongoDB) *ContentStoreService {
	return &ContentStoreService{
		mongodb:    mongodb,
		collection: mongodb.Collection(database.CollectionContentItems),
	}
}

// SaveItems upserts a batch of items and returns how many were newly
// inserted. Re-running a fetch over the same window inserts nothing.
func (s *ContentStoreService) SaveItems(ctx context.Context, items []models.ContentItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(items))
	for i := range items {
		item := items[i]
		if item.CreatedAt.IsZero() {
			item.CreatedAt = time.Now().UTC()
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(itemIdentityFilter(item)).
			SetUpdate(bson.M{"$setOnInsert": item}).
			SetUpsert(true))
	}

	result, err := s.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to save content items: %w", err)
	}

	inserted := int(result.UpsertedCount)
	if inserted < len(items) {
		log.Printf("📥 [CONTENT] Saved %d items (%d already known)", inserted, len(items)-inserted)
	} else {
		log.Printf("📥 [CONTENT] Saved %d items", inserted)
	}
	return inserted, nil
}

// itemIdentityFilter builds the dedup key for one item: the external ID when
// the source provides one, otherwise the URL (pages have no vendor ID).
func itemIdentityFilter(item models.ContentItem) bson.M {
	filter := bson.M{
		"ownerId":    item.OwnerID,
		"sourceType": item.SourceType,
	}
	if item.ExternalID != "" {
		filter["externalId"] = item.ExternalID
	} else {
		filter["url"] = item.URL
	}
	return filter
}

// ItemsForOwner returns a brand's items, newest first, capped at limit
func (s *ContentStoreService) ItemsForOwner(ctx context.Context, ownerID string, limit int) ([]models.ContentItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load content items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.ContentItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode content items: %w", err)
	}
	return items, nil
}

// CountForOwner returns how many items are stored for a brand
func (s *ContentStoreService) CountForOwner(ctx context.Context, ownerID string) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count content items: %w", err)
	}
	return count, nil
}
