package handlers

import (
	"context"
	"log"
	"time"

	"brandintel/internal/models"
	"brandintel/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SourceHandler handles brand source connection endpoints
type SourceHandler struct {
	sourceService *services.SourceService
}

// NewSourceHandler creates a new source handler
func NewSourceHandler(sourceService *services.SourceService) *SourceHandler {
	return &SourceHandler{sourceService: sourceService}
}

// ConnectSource registers a new source for a brand
// POST /api/v1/sources
func (h *SourceHandler) ConnectSource(c *fiber.Ctx) error {
	var req models.ConnectSourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	source, err := h.sourceService.Connect(ctx, req)
	if err != nil {
		log.Printf("❌ [SOURCES-API] Failed to connect source: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(source)
}

// ListSources returns every source connected for a brand
// GET /api/v1/brands/:ownerId/sources
func (h *SourceHandler) ListSources(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")
	if ownerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Owner ID is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sources, err := h.sourceService.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Printf("❌ [SOURCES-API] Failed to list sources: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve sources",
		})
	}

	return c.JSON(fiber.Map{
		"sources": sources,
		"count":   len(sources),
	})
}

// DisconnectSource removes a source connection and its stored credential
// DELETE /api/v1/brands/:ownerId/sources/:sourceId
func (h *SourceHandler) DisconnectSource(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")
	sourceID, err := primitive.ObjectIDFromHex(c.Params("sourceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid source ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.sourceService.Disconnect(ctx, ownerID, sourceID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
