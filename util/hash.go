package util

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// HashWithSalt returns the hex BLAKE2b-256 digest of salt and value.
func HashWithSalt(value, salt string) string {
	sum := blake2b.Sum256([]byte(salt + ":" + value))
	return hex.EncodeToString(sum[:])
}
