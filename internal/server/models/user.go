package models

import "time"

// User is a persisted shopper account. Passwords are stored only as bcrypt
// hashes; the cart lives in the same record as a fixed-size slot map.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CartData maps a cart slot index ("0".."299") to a non-negative quantity.
type CartData map[string]int64
