package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns n random bytes encoded as 2n hexadecimal characters
func RandomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
