package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// SecretSize is the number of random bytes in a generated signing secret.
const SecretSize = 32

// GenerateSecret returns a random hex-encoded HS256 signing secret. It is
// used when no secret is configured, so tokens only live as long as the
// process.
func GenerateSecret() (string, error) {
	b := make([]byte, SecretSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
