// Package id generates prefixed NanoID identifiers for club entities.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each entity kind. The prefix makes an ID self-describing in logs
// and URLs ("cmt-V1StGXR8_Z5jdHi6B-myT" is obviously a comment).
const (
	PrefixUser     = "user"
	PrefixBook     = "book"
	PrefixWeek     = "week"
	PrefixChapter  = "chap"
	PrefixComment  = "cmt"
	PrefixQuestion = "q"
	PrefixAnswer   = "ans"
	PrefixToken    = "token"
)

// Generate creates a prefixed unique ID: prefix-nanoid.
// Returns an error if the system has insufficient entropy.
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// MustGenerate is like Generate but panics on failure.
// Only for seeding and tests.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}
