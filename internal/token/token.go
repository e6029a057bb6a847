// Package token mints invite tokens from a cryptographically secure random
// source.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Bytes of entropy per token; hex-encoded the token is twice this length.
const tokenBytes = 32

// Generate returns a new random token. Output carries no structure and does
// not depend on time or any caller input.
func Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
