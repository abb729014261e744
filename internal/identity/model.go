package identity

import "time"

// User represents a registered wallet owner. The user id is the opaque
// owner identifier the ledger is keyed by.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
}

// Credentials carries a login or registration attempt.
type Credentials struct {
	Email    string
	Password string
}
