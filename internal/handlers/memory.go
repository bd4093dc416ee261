package handlers

import (
	"context"
	"log"
	"time"

	"brandintel/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MemoryHandler handles memory store endpoints
type MemoryHandler struct {
	memoryService *services.MemoryService
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(memoryService *services.MemoryService) *MemoryHandler {
	return &MemoryHandler{memoryService: memoryService}
}

type ingestMemoryRequest struct {
	Text      string                 `json:"text"`
	SourceTag string                 `json:"source_tag"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type searchMemoryRequest struct {
	Query     string  `json:"query"`
	Threshold float64 `json:"threshold,omitempty"`
	Limit     int     `json:"limit,omitempty"`
}

// IngestMemory stores one text for a brand
// POST /api/v1/brands/:ownerId/memory
func (h *MemoryHandler) IngestMemory(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")

	var req ingestMemoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	record, stored, err := h.memoryService.IngestContext(ctx, ownerID, req.Text, req.SourceTag, req.Metadata)
	if err != nil {
		log.Printf("❌ [MEMORY-API] Failed to ingest: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store memory",
		})
	}
	if record == nil {
		// Embedding outage: accepted but not stored
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"stored":  false,
			"message": "Embedding service unavailable, text not stored",
		})
	}

	status := fiber.StatusOK
	if stored {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"stored": stored,
		"record": record,
	})
}

// SearchMemory returns the brand's records most similar to a query
// POST /api/v1/brands/:ownerId/memory/search
func (h *MemoryHandler) SearchMemory(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")

	var req searchMemoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	matches, err := h.memoryService.SearchMemory(ctx, ownerID, req.Query, req.Threshold, req.Limit)
	if err != nil {
		log.Printf("❌ [MEMORY-API] Search failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	return c.JSON(fiber.Map{
		"matches": matches,
		"count":   len(matches),
	})
}

// GetMemoryStats summarizes the brand's memory store
// GET /api/v1/brands/:ownerId/memory/stats
func (h *MemoryHandler) GetMemoryStats(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := h.memoryService.Stats(ctx, ownerID)
	if err != nil {
		log.Printf("❌ [MEMORY-API] Stats failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load stats",
		})
	}

	return c.JSON(stats)
}
