package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// computeDigest hashes the canonical JSON encoding of a Config (minus its
// own digest field, which would otherwise make the hash depend on
// itself). encoding/json's stable field order for structs makes this
// deterministic without a dedicated canonicalization library — the one
// deliberate stdlib choice here, justified in DESIGN.md.
func computeDigest(c Config) string {
	c.digest = ""

	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
