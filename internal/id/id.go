// Package id generates identifiers for stored entities and share links.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// ShareHashLength is the number of characters in a share hash.
	ShareHashLength = 8

	// shareHashAlphabet yields 4 random bytes of entropy rendered as hex.
	shareHashAlphabet = "0123456789abcdef"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "content-V1StGXR8_Z5jdHi6B-myT").
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// ShareHash draws a random 8 character lowercase hex token.
//
// The token is not checked against issued hashes. Callers insert it and
// retry on a uniqueness violation.
func ShareHash() (string, error) {
	hash, err := gonanoid.Generate(shareHashAlphabet, ShareHashLength)
	if err != nil {
		return "", fmt.Errorf("generate share hash: %w", err)
	}
	return hash, nil
}

// IsShareHash reports whether s has the shape of a share hash.
func IsShareHash(s string) bool {
	if len(s) != ShareHashLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
