package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// Identity derives the client key used by the lockout: the IP address and
// the first 16 hex characters of the User-Agent's SHA-256.
func Identity(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(userAgent))
	return ip + ":" + hex.EncodeToString(sum[:])[:16]
}
