package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-portal/internal/api/dto"
	"github.com/spec-kit/listing-portal/internal/domain"
	"github.com/spec-kit/listing-portal/internal/service"
	apperrors "github.com/spec-kit/listing-portal/pkg/util"
)

// ListingsHandler manages the public submission and directory endpoints.
type ListingsHandler struct {
	service *service.ListingService
}

// NewListingsHandler constructs handler.
func NewListingsHandler(listingService *service.ListingService) *ListingsHandler {
	return &ListingsHandler{service: listingService}
}

// Submit POST /listings.
func (h *ListingsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.service.Submit(c.Context(), service.SubmissionInput{
		Name:        req.Name,
		Email:       req.Email,
		WhatsApp:    req.WhatsApp,
		Website:     req.Website,
		City:        req.City,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"id":     listing.ID,
		"status": listing.Status,
	}})
}

// Directory GET /listings.
func (h *ListingsHandler) Directory(c *fiber.Ctx) error {
	filter := service.DirectoryFilter{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if city := c.Query("city"); city != "" {
		filter.City = &city
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}

	listings, err := h.service.ListDirectory(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ListingSummary, 0, len(listings))
	for i := range listings {
		items = append(items, listingSummary(&listings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func listingSummary(listing *domain.Listing) dto.ListingSummary {
	return dto.ListingSummary{
		ID:          listing.ID,
		Name:        listing.Name,
		Email:       listing.Email,
		WhatsApp:    listing.WhatsApp,
		Website:     listing.Website,
		City:        listing.City,
		Category:    listing.Category,
		Description: listing.Description,
		CreatedAt:   listing.CreatedAt,
	}
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
