package models

// Credentials is a username paired with the hex-encoded one-way digest of
// its password. The digest is computed client-side; the plaintext password
// is never stored or transmitted.
type Credentials struct {
	Username string
	Digest   string
}

// Valid reports whether both fields are present. Partially populated
// credentials are treated as absent everywhere.
func (c Credentials) Valid() bool {
	return c.Username != "" && c.Digest != ""
}
