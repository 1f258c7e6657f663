package util

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// prehash maps a password of any length to a fixed 44-byte input, below
// bcrypt's 72-byte limit.
func prehash(pass string) []byte {
	sum := sha256.Sum256([]byte(pass))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// HashPassword derives a bcrypt hash of the SHA-256 digest of pass, so any
// length is accepted. A cost outside bcrypt's range falls back to
// bcrypt.DefaultCost.
func HashPassword(pass string, cost int) ([]byte, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(prehash(pass), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// CheckPassword reports whether pass matches hash. A malformed hash is an
// error; a plain mismatch is not.
func CheckPassword(hash []byte, pass string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, prehash(pass))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("check password: %w", err)
	}
}
