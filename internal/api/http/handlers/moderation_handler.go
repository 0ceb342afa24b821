package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-portal/internal/api/dto"
	"github.com/spec-kit/listing-portal/internal/auth"
	"github.com/spec-kit/listing-portal/internal/domain"
	"github.com/spec-kit/listing-portal/internal/service"
	apperrors "github.com/spec-kit/listing-portal/pkg/util"
)

// ModerationHandler manages the administrator moderation endpoints.
type ModerationHandler struct {
	moderation *service.ModerationService
	listings   *service.ListingService
}

// NewModerationHandler constructs handler.
func NewModerationHandler(moderation *service.ModerationService, listings *service.ListingService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation, listings: listings}
}

// Queue GET /admin/listings.
func (h *ModerationHandler) Queue(c *fiber.Ctx) error {
	if _, ok := adminPrincipal(c); !ok {
		return apperrors.NewUnauthorized("administrator required")
	}

	filter := service.QueueFilter{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.ListingStatus(strings.ToUpper(strings.TrimSpace(part))))
		}
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}

	listings, err := h.listings.ListQueue(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ModerationListingView, 0, len(listings))
	for i := range listings {
		items = append(items, moderationView(&listings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Decide POST /admin/listings/:id/decision. The single mutation entry point
// into the moderation core.
func (h *ModerationHandler) Decide(c *fiber.Ctx) error {
	principal, ok := adminPrincipal(c)
	if !ok {
		return apperrors.NewUnauthorized("administrator required")
	}

	listingID, err := service.ParseListingID(c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.moderation.ApplyDecision(
		c.Context(),
		principal.Admin.ID,
		listingID,
		domain.DecisionAction(strings.ToLower(strings.TrimSpace(req.Action))),
		service.DecisionOptions{
			Reason:         req.Reason,
			AddToBlacklist: req.AddToBlacklist,
		},
	)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DecisionResponse{
		ListingID: result.ListingID,
		NewStatus: string(result.NewStatus),
	}})
}

// Blacklist GET /admin/blacklist.
func (h *ModerationHandler) Blacklist(c *fiber.Ctx) error {
	if _, ok := adminPrincipal(c); !ok {
		return apperrors.NewUnauthorized("administrator required")
	}

	entries, err := h.listings.ListBlacklist(c.Context(), parseIntQuery(c, "limit", 50), parseIntQuery(c, "offset", 0))
	if err != nil {
		return err
	}
	items := make([]dto.BlacklistEntryView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.BlacklistEntryView{
			ID:        entry.ID,
			Kind:      string(entry.Kind),
			Value:     entry.Value,
			Reason:    entry.Reason,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func moderationView(listing *domain.Listing) dto.ModerationListingView {
	return dto.ModerationListingView{
		ListingSummary: listingSummary(listing),
		Status:         string(listing.Status),
		DecisionReason: listing.DecisionReason,
	}
}

func adminPrincipal(c *fiber.Ctx) (*auth.Principal, bool) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Admin == nil {
		return nil, false
	}
	return principal, true
}
