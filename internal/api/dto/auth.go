package dto

import (
	"regexp"
	"time"

	ierr "github.com/emeraldmart/storefront/internal/errors"
)

var emailFormat = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterRequest carries the registration form fields. Checks run in the
// form's field order; the first failing field wins.
type RegisterRequest struct {
	FullName    string `json:"name"`
	DateOfBirth string `json:"dob"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if r.FullName == "" {
		return ierr.NewError("missing full name").
			WithHint("Full name is required").
			Mark(ierr.ErrValidation)
	}
	if !nameLettersOnly.MatchString(r.FullName) {
		return ierr.NewError("invalid full name").
			WithHint("Name must contain letters only").
			Mark(ierr.ErrValidation)
	}

	if r.DateOfBirth == "" {
		return ierr.NewError("missing date of birth").
			WithHint("Date of birth is required").
			Mark(ierr.ErrValidation)
	}

	if r.Email == "" {
		return ierr.NewError("missing email").
			WithHint("Email is required").
			Mark(ierr.ErrValidation)
	}
	if !emailFormat.MatchString(r.Email) {
		return ierr.NewError("invalid email").
			WithHint("Invalid email format").
			Mark(ierr.ErrValidation)
	}

	if r.Username == "" {
		return ierr.NewError("missing username").
			WithHint("Username is required").
			Mark(ierr.ErrValidation)
	}

	if r.Password == "" {
		return ierr.NewError("missing password").
			WithHint("Password is required").
			Mark(ierr.ErrValidation)
	}
	if len(r.Password) < 6 {
		return ierr.NewError("password too short").
			WithHint("Password must be 6+ characters").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// UserResponse is the public view of a registration record
type UserResponse struct {
	Username  string    `json:"username"`
	FullName  string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest carries the login form fields
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return ierr.NewError("missing username").
			WithHint("Username is required").
			Mark(ierr.ErrValidation)
	}

	if len(r.Password) < 6 {
		return ierr.NewError("password too short").
			WithHint("Password must be at least 6 characters").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse reports the current login status
type SessionResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}
