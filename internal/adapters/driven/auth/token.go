package auth

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"

	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.TokenGenerator = (*RandomTokens)(nil)

// tokenBytes is the entropy of a bearer token.
const tokenBytes = 32

// RandomTokens issues UUID identifiers and URL-safe random bearer tokens.
type RandomTokens struct{}

// NewRandomTokens creates a token generator.
func NewRandomTokens() *RandomTokens {
	return &RandomTokens{}
}

// NewID returns a random UUID.
func (RandomTokens) NewID() string {
	return uuid.NewString()
}

// NewToken returns 256 random bits, base64url encoded without padding.
// It falls back to a pair of UUIDs if the system random source fails.
func (RandomTokens) NewToken() string {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString() + uuid.NewString()
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
