package common

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns n random bytes, hex encoded.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Wipe zeroes b in place; used on passwords once they are sent.
func Wipe(b []byte) {
	clear(b)
}
