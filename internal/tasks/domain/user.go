package domain

import "time"

// User is an account that owns tasks. Email is stored lowercase and is
// unique at the store level. PasswordHash is an argon2id PHC string; the
// plaintext password never leaves the registration/login request.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Bio          string // optional profile text
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
