package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"brandintel/internal/crypto"
	"brandintel/internal/database"
	"brandintel/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SourceService manages brand source connections. Credentials are encrypted
// before they ever touch the database and decrypted only transiently for a
// fetch; lookups and API responses carry the masked preview instead.
type SourceService struct {
	mongodb    *database.MongoDB
	collection *mongo.Collection
	encryption *crypto.EncryptionService
}

// NewSourceService creates a new source service
func NewSourceService(mongodb *database.MongoDB, encryption *crypto.EncryptionService) *SourceService {
	return &SourceService{
		mongodb:    mongodb,
		collection: mongodb.Collection(database.CollectionBrandSources),
		encryption: encryption,
	}
}

// Connect registers (or re-registers) a source for a brand. Reconnecting an
// existing (owner, type, handle) tuple replaces its credential and clears any
// error state.
func (s *SourceService) Connect(ctx context.Context, req models.ConnectSourceRequest) (*models.BrandSource, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("owner ID is required")
	}
	if !models.ValidSourceType(req.SourceType) {
		return nil, fmt.Errorf("unsupported source type %q", req.SourceType)
	}
	if req.HandleOrURL == "" {
		return nil, fmt.Errorf("handle or URL is required")
	}
	if req.Credential == "" && req.SourceType != models.SourceTypeWebsite {
		return nil, fmt.Errorf("credential is required for %s sources", req.SourceType)
	}

	encrypted := ""
	if req.Credential != "" {
		var err error
		encrypted, err = s.encryption.Encrypt(req.Credential)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt credential: %w", err)
		}
	}

	var expiry *time.Time
	if req.CredentialExpiry != "" {
		parsed, err := time.Parse(time.RFC3339, req.CredentialExpiry)
		if err != nil {
			return nil, fmt.Errorf("invalid credential expiry %q: %w", req.CredentialExpiry, err)
		}
		expiry = &parsed
	}

	now := time.Now()
	filter := bson.M{
		"ownerId":     req.OwnerID,
		"sourceType":  req.SourceType,
		"handleOrUrl": req.HandleOrURL,
	}
	update := bson.M{
		"$set": bson.M{
			"encryptedCredential":       encrypted,
			"credentialExpiry":          expiry,
			"status":                    models.SourceStatusConnected,
			"lastError":                 "",
			"metadata.maskedCredential": maskCredential(req.Credential),
			"updatedAt":                 now,
		},
		"$setOnInsert": bson.M{
			"ownerId":     req.OwnerID,
			"sourceType":  req.SourceType,
			"handleOrUrl": req.HandleOrURL,
			"createdAt":   now,
		},
	}

	result := s.collection.FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var source models.BrandSource
	if err := result.Decode(&source); err != nil {
		return nil, fmt.Errorf("failed to save source: %w", err)
	}

	log.Printf("🔗 [SOURCES] Connected %s source %s for brand %s", source.SourceType, source.HandleOrURL, source.OwnerID)
	return &source, nil
}

// ListByOwner returns every source connected for a brand
func (s *SourceService) ListByOwner(ctx context.Context, ownerID string) ([]models.BrandSource, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"ownerId": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer cursor.Close(ctx)

	sources := []models.BrandSource{}
	if err := cursor.All(ctx, &sources); err != nil {
		return nil, fmt.Errorf("failed to decode sources: %w", err)
	}
	return sources, nil
}

// SourcesForOwner returns a brand's sources of one type
func (s *SourceService) SourcesForOwner(ctx context.Context, ownerID, sourceType string) ([]models.BrandSource, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"ownerId": ownerID, "sourceType": sourceType})
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}
	defer cursor.Close(ctx)

	sources := []models.BrandSource{}
	if err := cursor.All(ctx, &sources); err != nil {
		return nil, fmt.Errorf("failed to decode sources: %w", err)
	}
	return sources, nil
}

// DecryptCredential returns the plaintext credential for a fetch. The result
// must stay in memory for the duration of the request only.
func (s *SourceService) DecryptCredential(source *models.BrandSource) (string, error) {
	if source.EncryptedCredential == "" {
		return "", nil
	}
	return s.encryption.Decrypt(source.EncryptedCredential)
}

// MarkError flips a source into error status with the failure message
func (s *SourceService) MarkError(ctx context.Context, id primitive.ObjectID, message string) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":    models.SourceStatusError,
			"lastError": message,
			"updatedAt": time.Now(),
		},
	})
	return err
}

// MarkFetched records a successful fetch run on the source
func (s *SourceService) MarkFetched(ctx context.Context, id primitive.ObjectID, itemCount int) error {
	now := time.Now()
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"metadata.lastItemCount": itemCount,
			"metadata.lastFetchedAt": now,
			"updatedAt":              now,
		},
		"$inc": bson.M{
			"metadata.fetchCount": 1,
		},
	})
	return err
}

// Disconnect removes a source connection and its stored credential
func (s *SourceService) Disconnect(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return fmt.Errorf("failed to disconnect source: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("source not found")
	}
	log.Printf("🔌 [SOURCES] Disconnected source %s for brand %s", id.Hex(), ownerID)
	return nil
}

// OwnersWithSources returns the distinct brand IDs that have at least one
// connected source, for the periodic refresh sweep
func (s *SourceService) OwnersWithSources(ctx context.Context) ([]string, error) {
	raw, err := s.collection.Distinct(ctx, "ownerId", bson.M{"status": models.SourceStatusConnected})
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	owners := make([]string, 0, len(raw))
	for _, value := range raw {
		if owner, ok := value.(string); ok {
			owners = append(owners, owner)
		}
	}
	return owners, nil
}

// maskCredential produces a safe preview of a credential for display
func maskCredential(credential string) string {
	if credential == "" {
		return ""
	}
	if len(credential) <= 8 {
		return "****"
	}
	return credential[:4] + "..." + credential[len(credential)-4:]
}
