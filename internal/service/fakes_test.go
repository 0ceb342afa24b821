package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/listing-portal/internal/domain"
	"github.com/spec-kit/listing-portal/internal/events"
	"github.com/spec-kit/listing-portal/internal/mail"
	"github.com/spec-kit/listing-portal/internal/repository"
)

type fakeListingRepository struct {
	mu       sync.Mutex
	nextID   int64
	listings map[int64]*domain.Listing
}

func newFakeListingRepository() *fakeListingRepository {
	return &fakeListingRepository{nextID: 1, listings: make(map[int64]*domain.Listing)}
}

func (r *fakeListingRepository) add(listing domain.Listing) *domain.Listing {
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing.ID == 0 {
		listing.ID = r.nextID
	}
	if listing.ID >= r.nextID {
		r.nextID = listing.ID + 1
	}
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	r.listings[listing.ID] = &listing
	return &listing
}

func (r *fakeListingRepository) Create(_ context.Context, listing *domain.Listing) error {
	stored := r.add(*listing)
	*listing = *stored
	return nil
}

func (r *fakeListingRepository) GetByID(_ context.Context, id int64) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *listing
	return &copied, nil
}

func (r *fakeListingRepository) UpdateStatus(_ context.Context, id int64, status domain.ListingStatus, reason *string) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	listing.Status = status
	listing.DecisionReason = reason
	listing.UpdatedAt = time.Now()
	return &domain.Contact{
		Name:     listing.Name,
		Email:    listing.Email,
		WhatsApp: listing.WhatsApp,
		Website:  listing.Website,
	}, nil
}

func (r *fakeListingRepository) ListWithFilter(_ context.Context, filter repository.ListingFilter) ([]domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Listing
	for _, listing := range r.listings {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, listing.Status) {
			continue
		}
		result = append(result, *listing)
	}
	return result, nil
}

func containsStatus(statuses []domain.ListingStatus, status domain.ListingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

type fakeBlacklistRepository struct {
	mu          sync.Mutex
	entries     map[domain.BlacklistCandidate]domain.BlacklistEntry
	nextID      int64
	findCalls   int
	insertCalls int
	failFinds   bool
	failInserts bool
}

func newFakeBlacklistRepository() *fakeBlacklistRepository {
	return &fakeBlacklistRepository{entries: make(map[domain.BlacklistCandidate]domain.BlacklistEntry), nextID: 1}
}

func (r *fakeBlacklistRepository) FindMatches(_ context.Context, candidates []domain.BlacklistCandidate) ([]domain.BlacklistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	if r.failFinds {
		return nil, errors.New("blacklist store unreachable")
	}
	var matches []domain.BlacklistEntry
	for _, candidate := range candidates {
		if entry, ok := r.entries[candidate]; ok {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}

func (r *fakeBlacklistRepository) InsertIfAbsent(_ context.Context, kind domain.BlacklistKind, value string, reason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertCalls++
	if r.failInserts {
		return errors.New("blacklist table not provisioned")
	}
	key := domain.BlacklistCandidate{Kind: kind, Value: value}
	if _, exists := r.entries[key]; exists {
		return nil
	}
	r.entries[key] = domain.BlacklistEntry{
		ID:        r.nextID,
		Kind:      kind,
		Value:     value,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	r.nextID++
	return nil
}

func (r *fakeBlacklistRepository) List(_ context.Context, _, _ int) ([]domain.BlacklistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.BlacklistEntry
	for _, entry := range r.entries {
		result = append(result, entry)
	}
	return result, nil
}

func (r *fakeBlacklistRepository) has(kind domain.BlacklistKind, value string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[domain.BlacklistCandidate{Kind: kind, Value: value}]
	return ok
}

func (r *fakeBlacklistRepository) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *recordingDispatcher) ofType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}

type fakeSender struct {
	mu       sync.Mutex
	sent     []mail.Message
	failNext bool
}

func (s *fakeSender) Send(_ context.Context, msg mail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		return errors.New("provider rejected the message")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *fakeSender) messages() []mail.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mail.Message{}, s.sent...)
}
