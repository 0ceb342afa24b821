package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-portal/internal/domain"
	"github.com/spec-kit/listing-portal/internal/events"
	"github.com/spec-kit/listing-portal/internal/normalize"
	"github.com/spec-kit/listing-portal/internal/observability"
	"github.com/spec-kit/listing-portal/internal/repository"
	"github.com/spec-kit/listing-portal/pkg/util"
)

// DecisionOptions carries the administrator's optional reject parameters.
type DecisionOptions struct {
	Reason         string
	AddToBlacklist bool
}

// DecisionResult is the authoritative outcome of a moderation decision.
type DecisionResult struct {
	ListingID int64
	NewStatus domain.ListingStatus
	Contact   domain.Contact
}

// ModerationService applies administrator decisions to listings. The status
// transition is the operation of record; blacklist population and the outcome
// email are best-effort side effects that can never fail or revert it.
type ModerationService struct {
	listings   repository.ListingRepository
	screening  *ScreeningService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// ModerationDependencies bundles collaborators for the moderation service.
type ModerationDependencies struct {
	ListingRepo repository.ListingRepository
	Screening   *ScreeningService
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// NewModerationService constructs the service.
func NewModerationService(deps ModerationDependencies) *ModerationService {
	return &ModerationService{
		listings:   deps.ListingRepo,
		screening:  deps.Screening,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// ParseListingID parses a raw identifier, requiring a positive integer.
func ParseListingID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.NewInvalidID(raw)
	}
	return id, nil
}

// ApplyDecision validates and applies an approve/reject transition. The
// update overwrites the status unconditionally, so repeating a decision on an
// already-decided listing succeeds again with the same result.
func (s *ModerationService) ApplyDecision(ctx context.Context, adminID string, listingID int64, action domain.DecisionAction, opts DecisionOptions) (*DecisionResult, error) {
	if !action.Valid() {
		return nil, util.NewInvalidAction(string(action))
	}
	if listingID <= 0 {
		return nil, util.NewInvalidID(strconv.FormatInt(listingID, 10))
	}

	newStatus := domain.ListingStatusApproved
	if action == domain.DecisionReject {
		newStatus = domain.ListingStatusRejected
	}

	var reason *string
	if action == domain.DecisionReject && strings.TrimSpace(opts.Reason) != "" {
		trimmed := strings.TrimSpace(opts.Reason)
		reason = &trimmed
	}

	contact, err := s.listings.UpdateStatus(ctx, listingID, newStatus, reason)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("listing", map[string]any{"id": listingID})
		}
		return nil, util.MapError(err)
	}

	if action == domain.DecisionReject && opts.AddToBlacklist {
		s.enrichBlacklist(ctx, adminID, listingID, *contact, reason)
	}

	s.metrics.RecordDecision(string(action))
	s.publishEvent(ctx, events.Event{
		Type:      events.EventListingDecided,
		ListingID: listingID,
		Actor:     adminActor(adminID),
		Payload: events.ListingDecidedPayload{
			Action:    action,
			NewStatus: newStatus,
			Reason:    opts.Reason,
			Contact:   *contact,
		},
	})

	return &DecisionResult{
		ListingID: listingID,
		NewStatus: newStatus,
		Contact:   *contact,
	}, nil
}

// enrichBlacklist projects the stored contact into banned identifiers and
// inserts each one independently. Failures are logged and swallowed; the
// transition already committed and is never rolled back for auxiliary writes.
func (s *ModerationService) enrichBlacklist(ctx context.Context, adminID string, listingID int64, contact domain.Contact, reason *string) {
	email := normalize.Email(contact.Email)
	whatsapp := normalize.WhatsApp(contact.WhatsApp)
	dom := normalize.DomainFromEmail(contact.Email)
	if dom == "" {
		dom = normalize.DomainFromWebsite(contact.Website)
	}

	entries := []domain.BlacklistCandidate{
		{Kind: domain.BlacklistKindEmail, Value: email},
		{Kind: domain.BlacklistKindWhatsApp, Value: whatsapp},
		{Kind: domain.BlacklistKindDomain, Value: dom},
	}

	for _, entry := range entries {
		if entry.Value == "" {
			continue
		}
		if err := s.screening.InsertIfAbsent(ctx, entry.Kind, entry.Value, reason); err != nil {
			s.logger.Warn("blacklist insert failed",
				zap.String("code", util.CodeAuxiliaryWriteFailed),
				zap.Int64("listing_id", listingID),
				zap.String("kind", string(entry.Kind)),
				zap.Error(err),
			)
			continue
		}
		s.publishEvent(ctx, events.Event{
			Type:      events.EventBlacklistEntryAdded,
			ListingID: listingID,
			Actor:     adminActor(adminID),
			Payload: events.BlacklistEntryAddedPayload{
				Kind:  entry.Kind,
				Value: entry.Value,
			},
		})
	}
}

func (s *ModerationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func adminActor(adminID string) events.Actor {
	return events.Actor{
		Type:    domain.SubjectTypeAdmin,
		AdminID: &adminID,
	}
}
