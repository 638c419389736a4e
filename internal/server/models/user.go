// Package models holds the rows persisted by the server repositories.
package models

import "time"

// User is a registered account. PasswordHash is an encoded argon2id hash and
// is never sent back to clients.
type User struct {
	ID           string
	Name         string
	Email        string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
