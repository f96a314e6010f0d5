// Package crypto implements server-side password hashing with Argon2id.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Params holds the Argon2id cost parameters and the per-user salt size.
type Params struct {
	Time      uint32 // iterations
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   int
}

// DefaultParams is tuned for interactive sign-in on a small server.
var DefaultParams = Params{
	Time:      3,
	MemoryKiB: 64 * 1024,
	Threads:   1,
	KeyLen:    32,
	SaltLen:   16,
}

// NewSalt returns a fresh random salt of the configured length.
func (p Params) NewSalt() ([]byte, error) {
	b := make([]byte, p.SaltLen)
	_, err := rand.Read(b)
	return b, err
}

// Hash derives the Argon2id key for password under salt.
func (p Params) Hash(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)
}

// Verify reports whether password matches the stored hash, in constant time.
func (p Params) Verify(password, salt, expected []byte) bool {
	return subtle.ConstantTimeCompare(p.Hash(password, salt), expected) == 1
}
