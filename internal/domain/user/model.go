package user

import "time"

// User is a registration record. Records are keyed by username in the
// persisted users map; passwords are stored as bcrypt hashes, never in
// clear text.
type User struct {
	Username     string    `json:"username"`
	FullName     string    `json:"name"`
	DateOfBirth  string    `json:"dob"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
