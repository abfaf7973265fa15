package core

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/mr-tron/base58"
)

// Confirmation tokens are 24 bytes of entropy, base58-encoded so they survive
// URLs and email clients unescaped (~33 characters).
const tokenEntropyBytes = 24

func newOpaqueToken() (string, error) {
	b := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base58.Encode(b), nil
}

// Only the SHA-256 of a token is ever stored; the raw value exists in the
// confirmation link alone.
func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
