package dto

import "time"

// SubmitListingRequest payload for public submissions.
type SubmitListingRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	WhatsApp    string `json:"whatsapp"`
	Website     string `json:"website"`
	City        string `json:"city"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// ListingSummary is the public directory view of a listing.
type ListingSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	WhatsApp    string    `json:"whatsapp,omitempty"`
	Website     string    `json:"website,omitempty"`
	City        string    `json:"city,omitempty"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ModerationListingView is the admin queue view, including status fields.
type ModerationListingView struct {
	ListingSummary
	Status         string  `json:"status"`
	DecisionReason *string `json:"decision_reason,omitempty"`
}

// DecisionRequest is the administrator's moderation action payload.
type DecisionRequest struct {
	Action         string `json:"action"`
	Reason         string `json:"reason,omitempty"`
	AddToBlacklist bool   `json:"add_to_blacklist,omitempty"`
}

// DecisionResponse reports the applied transition.
type DecisionResponse struct {
	ListingID int64  `json:"listing_id"`
	NewStatus string `json:"new_status"`
}

// BlacklistEntryView is the admin view of a banned identifier.
type BlacklistEntryView struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Value     string    `json:"value"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
