package testutil

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// SHA1Hex returns the SHA-1 of data as an uppercase hex string.
// Matches the hash format stored in the reference database.
func SHA1Hex(data []byte) string {
	h := sha1.Sum(data)
	return strings.ToUpper(hex.EncodeToString(h[:]))
}
