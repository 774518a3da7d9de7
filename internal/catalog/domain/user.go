package domain

import "time"

// User is a credential-store record. Usernames are immutable after
// registration; HashedPassword is an argon2 PHC digest, never the plaintext.
type User struct {
	ID             string
	Username       string
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
