package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered credential (email + password).
//
// A User is not linked to a Participant. Registration creates both, but the two
// records live in different collections and can drift apart when the second write
// fails.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `firestore:"id"`

	// Email is the user's email address (unique). Used for sign-in.
	Email string `firestore:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `firestore:"password_hash"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `firestore:"created_at"`

	// UpdatedAt is the Unix timestamp of the last change to the account.
	UpdatedAt int64 `firestore:"updated_at"`
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
