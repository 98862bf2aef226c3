// Package hasher provides the one-way password hashing primitive used by the
// auth service.
package hasher

// Hasher hashes plaintext passwords and verifies candidates against stored
// digests.
type Hasher interface {
	// Hash returns a salted, computationally expensive digest of password.
	// Two calls with the same password yield different digests.
	Hash(password string) (string, error)

	// Verify reports whether password reproduces digest. A malformed digest
	// is a verification failure, not an error.
	Verify(password string, digest string) bool
}
