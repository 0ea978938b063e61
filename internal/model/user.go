package model

import "time"

// Identity is a registered username. It doubles as the session key: at
// most one live connection holds a given identity.
type Identity string

// User is a stored account record
type User struct {
	Username     Identity  `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	CreatedAt    time.Time `json:"created_at"`
}
