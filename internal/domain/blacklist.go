package domain

import "time"

// BlacklistKind classifies which identifier a blacklist entry bans.
type BlacklistKind string

const (
	BlacklistKindEmail    BlacklistKind = "email"
	BlacklistKindWhatsApp BlacklistKind = "whatsapp"
	BlacklistKindDomain   BlacklistKind = "domain"
)

// BlacklistEntry is a banned normalized identifier. Entries are keyed by
// (kind, value) and carry no reference back to the listing that produced them.
type BlacklistEntry struct {
	ID        int64
	Kind      BlacklistKind
	Value     string
	Reason    *string
	CreatedAt time.Time
}

// BlacklistCandidate pairs a kind with a normalized value for screening.
type BlacklistCandidate struct {
	Kind  BlacklistKind
	Value string
}
