// Package cryptox contains the client-side credential hashing helpers.
//
// The backend stores SHA-256 digests and its stored procedures compare
// against them, so the digest format here (lowercase hex, 64 characters)
// is part of the wire contract and must not change.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// PasswordDigest computes the hex-encoded SHA-256 digest of a raw password.
// The raw password itself never leaves the client.
func PasswordDigest(password []byte) string {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:])
}

// WipeByteArray overwrites b with zeros. Callers should wipe password
// buffers as soon as the digest has been computed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
