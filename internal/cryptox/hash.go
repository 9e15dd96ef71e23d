// Package cryptox turns plaintext passwords into the digests stored in the
// users table.
package cryptox

import (
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. Defaults follow the OWASP baseline.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultParams is what the server runs with.
var DefaultParams = Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32}

// Hasher derives a deterministic digest from a password. The pepper plays
// the role of a fixed salt so that the digest can be compared inside a
// SQL predicate.
type Hasher struct {
	pepper []byte
	params Params
}

func NewHasher(pepper string, params Params) *Hasher {
	return &Hasher{pepper: []byte(pepper), params: params}
}

// Hash returns the hex-encoded digest of plaintext. The empty string is a
// valid input and has a digest of its own.
func (h *Hasher) Hash(plaintext string) string {
	key := argon2.IDKey([]byte(plaintext), h.pepper, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
	return hex.EncodeToString(key)
}
