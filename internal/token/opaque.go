package token

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

const opaqueNonceSize = 16

// NewOpaque builds an opaque session token: a 128-bit random nonce followed
// by the issuance time and the user id, base64url-encoded without padding.
// The embedded fields exist for operator forensics only. Nothing ever
// parses trust back out of the token; the session store is the sole source
// of truth for validity.
func NewOpaque(userID string, issuedAt time.Time) (string, error) {
	buf := make([]byte, opaqueNonceSize+8+len(userID))
	if _, err := rand.Read(buf[:opaqueNonceSize]); err != nil {
		return "", fmt.Errorf("opaque token entropy: %w", err)
	}
	binary.BigEndian.PutUint64(buf[opaqueNonceSize:opaqueNonceSize+8], uint64(issuedAt.Unix()))
	copy(buf[opaqueNonceSize+8:], userID)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
