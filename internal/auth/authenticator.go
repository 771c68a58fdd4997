// Package auth holds the authentication collaborator: credential creation and
// verification, session tokens, and per-browser auth state with subscriptions.
package auth

import (
	"context"

	"github.com/mmynk/catchboard/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, hosted
// identity provider, etc.) without changing the tournament code.
type Authenticator interface {
	// Register creates a new credential for email.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, email, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
