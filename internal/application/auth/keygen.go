package auth

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// API key format: the literal product prefix followed by 48 random lowercase
// ASCII letters. 48 characters over a 26-letter alphabet is ~225 bits of
// entropy, so global uniqueness holds without a storage round-trip.
const (
	KeyPrefix    = "jgy-"
	KeySecretLen = 48
	keyAlphabet  = "abcdefghijklmnopqrstuvwxyz"
)

// GenerateAPIKey returns a fresh opaque key secret. Random bytes at or
// above 234, the largest multiple of 26 below 256, are discarded so the
// letters draw uniformly.
func GenerateAPIKey() (string, error) {
	var b strings.Builder
	b.Grow(len(KeyPrefix) + KeySecretLen)
	b.WriteString(KeyPrefix)
	buf := make([]byte, KeySecretLen)
	n := 0
	for n < KeySecretLen {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate key secret: %w", err)
		}
		for _, c := range buf {
			if c >= 234 {
				continue
			}
			b.WriteByte(keyAlphabet[int(c)%len(keyAlphabet)])
			n++
			if n == KeySecretLen {
				break
			}
		}
	}
	return b.String(), nil
}

// ValidKeyFormat reports whether s has the shape of a generated key. It is a
// cheap pre-check only; possession of a stored secret is what authenticates.
func ValidKeyFormat(s string) bool {
	if len(s) != len(KeyPrefix)+KeySecretLen || !strings.HasPrefix(s, KeyPrefix) {
		return false
	}
	for i := len(KeyPrefix); i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
