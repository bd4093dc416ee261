package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Source types
const (
	SourceTypeSocialFeed   = "social-feed"
	SourceTypeVideoChannel = "video-channel"
	SourceTypeWebsite      = "website"
)

// Source status values. A source in "error" status needs reconnection by the
// user; fetchers never silently auto-reconnect it.
const (
	SourceStatusConnected = "connected"
	SourceStatusError     = "error"
)

// BrandSource represents one external account connection for a brand
type BrandSource struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     string             `bson:"ownerId" json:"owner_id"`
	SourceType  string             `bson:"sourceType" json:"source_type"`
	HandleOrURL string             `bson:"handleOrUrl" json:"handle_or_url"`

	// Encrypted credential - NEVER exposed outside transient decrypted use
	EncryptedCredential string     `bson:"encryptedCredential" json:"-"` // json:"-" ensures it's never serialized
	CredentialExpiry    *time.Time `bson:"credentialExpiry,omitempty" json:"credential_expiry,omitempty"`

	Status    string `bson:"status" json:"status"`
	LastError string `bson:"lastError,omitempty" json:"last_error,omitempty"`

	// Metadata (safe to expose)
	Metadata SourceMetadata `bson:"metadata" json:"metadata"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// SourceMetadata contains non-sensitive information about a source connection
type SourceMetadata struct {
	MaskedCredential string     `bson:"maskedCredential" json:"masked_credential"` // e.g., "7eak...tkax"
	FetchCount       int64      `bson:"fetchCount" json:"fetch_count"`
	LastItemCount    int        `bson:"lastItemCount" json:"last_item_count"`
	LastFetchedAt    *time.Time `bson:"lastFetchedAt,omitempty" json:"last_fetched_at,omitempty"`
}

// ValidSourceType reports whether sourceType is one of the supported values
func ValidSourceType(sourceType string) bool {
	switch sourceType {
	case SourceTypeSocialFeed, SourceTypeVideoChannel, SourceTypeWebsite:
		return true
	}
	return false
}

// ConnectSourceRequest is the request body for connecting a source
type ConnectSourceRequest struct {
	OwnerID          string `json:"owner_id"`
	SourceType       string `json:"source_type"`
	HandleOrURL      string `json:"handle_or_url"`
	Credential       string `json:"credential"` // Will be encrypted, never stored in plaintext
	CredentialExpiry string `json:"credential_expiry,omitempty"`
}
