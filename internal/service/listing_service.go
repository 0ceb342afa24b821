package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-portal/internal/domain"
	"github.com/spec-kit/listing-portal/internal/events"
	"github.com/spec-kit/listing-portal/internal/repository"
	"github.com/spec-kit/listing-portal/pkg/util"
)

// SubmissionInput describes a public listing submission.
type SubmissionInput struct {
	Name        string
	Email       string
	WhatsApp    string
	Website     string
	City        string
	Category    string
	Description string
}

// DirectoryFilter describes public directory filters.
type DirectoryFilter struct {
	City     *string
	Category *string
	Limit    int
	Offset   int
}

// QueueFilter describes the admin moderation queue filters.
type QueueFilter struct {
	Statuses   []domain.ListingStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// ListingService coordinates submission intake and directory reads.
type ListingService struct {
	listings   repository.ListingRepository
	blacklist  repository.BlacklistRepository
	screening  *ScreeningService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ListingDependencies bundles collaborators for the listing service.
type ListingDependencies struct {
	ListingRepo   repository.ListingRepository
	BlacklistRepo repository.BlacklistRepository
	Screening     *ScreeningService
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// NewListingService constructs the service.
func NewListingService(deps ListingDependencies) *ListingService {
	return &ListingService{
		listings:   deps.ListingRepo,
		blacklist:  deps.BlacklistRepo,
		screening:  deps.Screening,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Submit screens a public submission and creates it in Pending when admitted.
func (s *ListingService) Submit(ctx context.Context, input SubmissionInput) (*domain.Listing, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, util.NewValidationError("name required", nil)
	}
	if strings.TrimSpace(input.Email) == "" && strings.TrimSpace(input.WhatsApp) == "" {
		return nil, util.NewValidationError("email or whatsapp required", nil)
	}

	contact := domain.Contact{
		Name:     name,
		Email:    input.Email,
		WhatsApp: input.WhatsApp,
		Website:  input.Website,
	}
	verdict, err := s.screening.Screen(ctx, contact)
	if err != nil {
		return nil, util.MapError(err)
	}
	if verdict.Blocked {
		s.logger.Info("submission blocked by blacklist",
			zap.String("kind", string(verdict.Match.Kind)),
			zap.String("value", verdict.Match.Value),
		)
		return nil, util.NewSubmissionBlocked()
	}

	listing := &domain.Listing{
		Name:        name,
		Email:       strings.TrimSpace(input.Email),
		WhatsApp:    strings.TrimSpace(input.WhatsApp),
		Website:     strings.TrimSpace(input.Website),
		City:        strings.TrimSpace(input.City),
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.ListingStatusPending,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, util.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventListingSubmitted,
		ListingID: listing.ID,
		Payload: events.ListingSubmittedPayload{
			Name:     listing.Name,
			City:     listing.City,
			Category: listing.Category,
		},
	})
	return listing, nil
}

// ListDirectory returns approved listings for the public directory.
func (s *ListingService) ListDirectory(ctx context.Context, filter DirectoryFilter) ([]domain.Listing, error) {
	repoFilter := repository.ListingFilter{
		Statuses: []domain.ListingStatus{domain.ListingStatusApproved},
		City:     filter.City,
		Category: filter.Category,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	return s.listings.ListWithFilter(ctx, repoFilter)
}

// ListQueue returns listings for the admin moderation queue. Defaults to
// pending submissions when no status filter is given.
func (s *ListingService) ListQueue(ctx context.Context, filter QueueFilter) ([]domain.Listing, error) {
	statuses := filter.Statuses
	if len(statuses) == 0 {
		statuses = []domain.ListingStatus{domain.ListingStatusPending}
	}
	repoFilter := repository.ListingFilter{
		Statuses:   statuses,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	return s.listings.ListWithFilter(ctx, repoFilter)
}

// ListBlacklist returns blacklist entries for admin review.
func (s *ListingService) ListBlacklist(ctx context.Context, limit, offset int) ([]domain.BlacklistEntry, error) {
	return s.blacklist.List(ctx, limit, offset)
}

func (s *ListingService) publishEvent(ctx context.Context, event events.Event) {
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
