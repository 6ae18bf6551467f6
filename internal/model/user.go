package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User represents a registered player.
// Created once at registration and immutable afterwards, except that the
// access code can be regenerated (which only touches the Credential).
type User struct {
	ID        UserID
	Name      string
	Email     string
	Role      string
	Company   string
	CreatedAt time.Time
}

// Credential holds a user's login secret.
// Stored separately from User so the hash never travels with profile data.
type Credential struct {
	UserID         UserID
	Email          string // login key (immutable)
	AccessCodeHash string // bcrypt hash of the generated access code
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
