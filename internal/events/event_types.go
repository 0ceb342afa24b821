package events

import (
	"time"

	"github.com/spec-kit/listing-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventListingSubmitted    EventType = "listing_submitted"
	EventListingDecided      EventType = "listing_decided"
	EventBlacklistEntryAdded EventType = "blacklist_entry_added"
)

// Actor encapsulates actor metadata for an event. Public submissions have no
// authenticated actor; moderation events carry the admin id.
type Actor struct {
	Type    domain.SubjectType `json:"type,omitempty"`
	AdminID *string            `json:"admin_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ListingID int64       `json:"listing_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ListingSubmittedPayload payload.
type ListingSubmittedPayload struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	Category string `json:"category"`
}

// ListingDecidedPayload payload.
type ListingDecidedPayload struct {
	Action    domain.DecisionAction `json:"action"`
	NewStatus domain.ListingStatus  `json:"new_status"`
	Reason    string                `json:"reason,omitempty"`
	Contact   domain.Contact        `json:"contact"`
}

// BlacklistEntryAddedPayload payload.
type BlacklistEntryAddedPayload struct {
	Kind  domain.BlacklistKind `json:"kind"`
	Value string               `json:"value"`
}
