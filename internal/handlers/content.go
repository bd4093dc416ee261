package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"brandintel/internal/fetchers"
	"brandintel/internal/models"
	"brandintel/internal/services"

	"github.com/gofiber/fiber/v2"
)

// fetchTimeout bounds one fetch run including the bounded website crawl
const fetchTimeout = 5 * time.Minute

// ContentHandler handles fetch-run and content listing endpoints
type ContentHandler struct {
	fetchService   *fetchers.Service
	contentStore   *services.ContentStoreService
	profileService *services.ProfileService
}

// NewContentHandler creates a new content handler
func NewContentHandler(fetchService *fetchers.Service, contentStore *services.ContentStoreService, profileService *services.ProfileService) *ContentHandler {
	return &ContentHandler{
		fetchService:   fetchService,
		contentStore:   contentStore,
		profileService: profileService,
	}
}

// FetchSource runs a fetch for one source type of a brand
// POST /api/v1/brands/:ownerId/fetch/:sourceType
func (h *ContentHandler) FetchSource(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")
	sourceType := c.Params("sourceType")

	if !models.ValidSourceType(sourceType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported source type",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	count, err := h.fetchService.FetchSourceContent(ctx, ownerID, sourceType)
	if err != nil {
		return fetchErrorResponse(c, err)
	}

	// New content makes any cached profile stale
	h.profileService.InvalidateProfile(ctx, ownerID)

	return c.JSON(fiber.Map{
		"owner_id":    ownerID,
		"source_type": sourceType,
		"new_items":   count,
	})
}

// FetchAll runs every registered fetcher over the brand's sources
// POST /api/v1/brands/:ownerId/fetch
func (h *ContentHandler) FetchAll(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	results := h.fetchService.FetchAll(ctx, ownerID)
	h.profileService.InvalidateProfile(ctx, ownerID)

	total := 0
	for _, result := range results {
		total += result.Count
	}

	return c.JSON(fiber.Map{
		"owner_id":  ownerID,
		"new_items": total,
		"sources":   results,
	})
}

// ListContent returns a brand's stored items, newest first
// GET /api/v1/brands/:ownerId/content?limit=100
func (h *ContentHandler) ListContent(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, err := h.contentStore.ItemsForOwner(ctx, ownerID, limit)
	if err != nil {
		log.Printf("❌ [CONTENT-API] Failed to list content: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve content",
		})
	}

	return c.JSON(fiber.Map{
		"items": items,
		"count": len(items),
	})
}

// fetchErrorResponse maps fetch error types onto HTTP statuses
func fetchErrorResponse(c *fiber.Ctx, err error) error {
	var authErr *fetchers.AuthError
	if errors.As(err, &authErr) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": authErr.Error(),
		})
	}

	var planErr *fetchers.PlanRestrictionError
	if errors.As(err, &planErr) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": planErr.Error(),
		})
	}

	var transientErr *fetchers.TransientFetchError
	if errors.As(err, &transientErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Upstream source is temporarily unavailable",
		})
	}

	log.Printf("❌ [CONTENT-API] Fetch failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Fetch failed",
	})
}
