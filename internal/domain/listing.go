package domain

import "time"

// ListingStatus enumerates moderation states for directory listings.
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "PENDING"
	ListingStatusApproved ListingStatus = "APPROVED"
	ListingStatusRejected ListingStatus = "REJECTED"
)

// DecisionAction enumerates moderation actions an administrator may take.
type DecisionAction string

const (
	DecisionApprove DecisionAction = "approve"
	DecisionReject  DecisionAction = "reject"
)

// Valid reports whether the action is one of the recognized decisions.
func (a DecisionAction) Valid() bool {
	return a == DecisionApprove || a == DecisionReject
}

// Listing is the aggregate for a submitted professional directory entry.
type Listing struct {
	ID             int64
	Name           string
	Email          string
	WhatsApp       string
	Website        string
	City           string
	Category       string
	Description    string
	Status         ListingStatus
	DecisionReason *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Contact carries the submitter-provided identifiers of a listing. It is
// returned by status updates so downstream side effects (blacklist entries,
// outcome email) work from the values as stored, regardless of later edits.
type Contact struct {
	Name     string
	Email    string
	WhatsApp string
	Website  string
}
