package domain

import "time"

// Admin is the domain model for portal administrators.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
