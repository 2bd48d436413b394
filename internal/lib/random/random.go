package random

import (
	"crypto/rand"
	"math/big"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewRandomString returns a random string of the given length drawn from
// [a-zA-Z0-9]. It is used for round seeds, so it reads crypto/rand directly.
func NewRandomString(length int) string {
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			b[i] = charset[0]

			continue
		}

		b[i] = charset[n.Int64()]
	}

	return string(b)
}
