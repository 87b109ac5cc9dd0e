package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// keyPrefix namespaces snapshot keys.
const keyPrefix = "users:"

// GenerateKey returns the cache key for a source URL.
// Scheme and host are case-insensitive and surrounding whitespace is ignored, so
// equivalent URLs share a key.
func GenerateKey(sourceURL string) string {
	normalized := strings.TrimSpace(sourceURL)
	if parsed, err := url.Parse(normalized); err == nil && parsed.Host != "" {
		parsed.Scheme = strings.ToLower(parsed.Scheme)
		parsed.Host = strings.ToLower(parsed.Host)
		parsed.Fragment = ""
		normalized = parsed.String()
	}

	sum := sha256.Sum256([]byte(keyPrefix + normalized))
	return hex.EncodeToString(sum[:])
}
