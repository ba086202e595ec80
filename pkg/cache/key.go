package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// KeyPrefix namespaces every cache key.
const KeyPrefix = "wordlister:cache"

// Key identifies one provider response.
type Key struct {
	// Provider name (gemini, deepseek, groq)
	Provider string

	// Prompt is the full prompt text sent to the provider
	Prompt string
}

// String generates a deterministic cache key string.
// Format: wordlister:cache:<provider>:<sha256(prompt)>
func (k Key) String() string {
	sum := sha256.Sum256([]byte(k.Prompt))
	return strings.Join([]string{KeyPrefix, k.Provider, hex.EncodeToString(sum[:])}, ":")
}
