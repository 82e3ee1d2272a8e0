package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

const fingerprintLabel = "lanchat|secret-fingerprint|"

// Fingerprint returns a short hex fingerprint of a shared secret.
//
// Participants compare fingerprints out-of-band to confirm they were given the
// same secret. It hashes a fixed label and the secret with SHA-256 and
// truncates to 10 bytes (20 hex chars).
func Fingerprint(secret []byte) string {
	h := sha256.New()
	h.Write([]byte(fingerprintLabel))
	h.Write(secret)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:10])
}
