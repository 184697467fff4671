package domain

import "time"

// User represents a registered rider or driver. The UniversityID is the
// stable identifier used for trip ownership and reservation bookkeeping.
type User struct {
	ID           string
	Name         string
	Surname      string
	UniversityID string
	Email        string
	PhoneNumber  string
	PasswordHash string
	CreatedAt    time.Time
}
