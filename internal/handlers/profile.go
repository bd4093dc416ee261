package handlers

import (
	"context"
	"log"
	"time"

	"brandintel/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles brand profile endpoints
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile returns the brand's profile, computing it on a cache miss
// GET /api/v1/brands/:ownerId/profile?refresh=true
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")
	if ownerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Owner ID is required",
		})
	}
	forceRefresh := c.Query("refresh", "false") == "true"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	profile, err := h.profileService.GenerateBrandProfile(ctx, ownerID, forceRefresh)
	if err != nil {
		log.Printf("❌ [PROFILE-API] Failed to generate profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate profile",
		})
	}

	return c.JSON(profile)
}
