package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key of the form "prefix:hexdigest" by hashing
// the JSON encoding of parts. JSON keeps the digest stable across runs
// for struct-valued parts, unlike fmt-style formatting of maps.
func hashKey(prefix string, parts ...interface{}) string {
	h := sha256.New()
	for _, part := range parts {
		b, err := json.Marshal(part)
		if err != nil {
			// Fall back to fmt for unmarshalable values.
			b = []byte(fmt.Sprintf("%v", part))
		}
		h.Write(b)
		h.Write([]byte{0}) // separator to avoid ambiguity
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex-encoded SHA-256 digest of data. The pipeline
// uses it to fingerprint input text for blob cache keys and stored
// records.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
