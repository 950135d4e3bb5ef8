package domain

import "time"

// User is the domain model for account holders. The password hash is set
// once at signup and never changes; there is no reset or change flow.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the resolved session identity handed to services. Every
// operation takes it explicitly rather than reading ambient request state.
type Identity struct {
	UserID string
	Email  string
}
