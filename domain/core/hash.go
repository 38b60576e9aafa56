package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Fingerprint is a content hash over analysis output, excluding build-time
// identifiers, so two runs over the same input can be compared for equality.
type Fingerprint Hash

// NewFingerprint creates a fingerprint from canonical content bytes
func NewFingerprint(data []byte) Fingerprint {
	return Fingerprint(NewHash(data))
}

// String returns the string representation
func (f Fingerprint) String() string { return Hash(f).String() }
