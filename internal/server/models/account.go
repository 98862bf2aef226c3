// Package models contains the server-side data model.
package models

import "time"

// Account is the durable identity record.
//
// ID is assigned by the store on creation and immutable afterwards. Email is
// the unique natural key, compared byte-exact. HashedPassword holds the
// hasher's opaque digest, never the plaintext. RefreshToken is empty until
// the account has registered or logged in; it and RefreshTokenExpiry are
// always replaced together on rotation, never independently.
type Account struct {
	ID                 string
	Email              string
	HashedPassword     string
	RefreshToken       string
	RefreshTokenExpiry time.Time
}
