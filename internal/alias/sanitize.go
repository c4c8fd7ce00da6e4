// Package alias normalizes and validates user-supplied custom aliases
// for shortened URLs.
package alias

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxLength is the maximum length of a sanitized alias.
const MaxLength = 50

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^a-z0-9\-_]`)
	separatorsRe = regexp.MustCompile(`[-_]{2,}`)
	edgeTrimRe   = regexp.MustCompile(`^[-_]+|[-_]+$`)
)

// Sanitize normalizes a raw alias into the accepted identifier alphabet.
// It never fails: unusable input collapses to the empty string. Sanitize
// is idempotent, so it is safe to apply to an already-sanitized alias.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.TrimSpace(raw)
	s = strings.ToLower(s)
	s = foldDiacritics(s)
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = disallowedRe.ReplaceAllString(s, "")
	s = separatorsRe.ReplaceAllString(s, "-")
	s = edgeTrimRe.ReplaceAllString(s, "")

	if len(s) > MaxLength {
		// Truncation can leave a trailing separator behind.
		s = edgeTrimRe.ReplaceAllString(s[:MaxLength], "")
	}

	return s
}

// foldDiacritics decomposes the string and strips combining marks,
// so "café" becomes "cafe".
func foldDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
