package user

import "context"

// Repository defines the interface for registration record access
type Repository interface {
	// Create stores a new registration record. Fails with an already exists
	// error when the username is taken.
	Create(ctx context.Context, u *User) error

	// Get returns the record for the username or a not found error
	Get(ctx context.Context, username string) (*User, error)
}

// SessionRepository tracks the single logged-in user. Absence is the
// logged-out state, not an error.
type SessionRepository interface {
	// SetLoggedIn records the username as the current session
	SetLoggedIn(ctx context.Context, username string) error

	// GetLoggedIn returns the current username; empty when logged out
	GetLoggedIn(ctx context.Context) (string, error)

	// ClearLoggedIn ends the current session
	ClearLoggedIn(ctx context.Context) error
}
