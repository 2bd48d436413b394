package outcome

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
	"time"
)

// RandomSource produces uniformly distributed 64-bit draws. The round machine
// takes the interface so tests can inject a deterministic source.
type RandomSource interface {
	Uint64() uint64
}

// CryptoSource reads crypto/rand and silently falls back to a seeded
// math/rand source if the system entropy pool cannot be read. Both paths are
// uniform over the full 64-bit range.
type CryptoSource struct {
	fallback *mathrand.Rand
}

func NewCryptoSource() *CryptoSource {
	return &CryptoSource{
		fallback: mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
	}
}

func (s *CryptoSource) Uint64() uint64 {
	var buf [8]byte

	if _, err := cryptorand.Read(buf[:]); err != nil {
		return s.fallback.Uint64()
	}

	return binary.BigEndian.Uint64(buf[:])
}

// Intn reduces a 64-bit draw onto [0, n). The draw is wide enough that the
// modulo bias over n <= 10 is far below anything observable.
func Intn(src RandomSource, n int) int {
	if n <= 0 {
		return 0
	}

	return int(src.Uint64() % uint64(n))
}
