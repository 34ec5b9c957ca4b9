// Package identifier derives URL-safe slugs and usernames and checks username
// availability against the profile store.
package identifier

import (
	"regexp"
	"strings"
)

// MaxUsernameLength is the single bound applied to usernames on both the
// write path and the display path.
const MaxUsernameLength = 15

var (
	slugSeparatorRe   = regexp.MustCompile(`[^a-z0-9]+`)
	usernameInvalidRe = regexp.MustCompile(`[^A-Za-z0-9_]`)
	slugRe            = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	usernameRe        = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)
)

// GenerateSlug lower-cases name, replaces every run of characters outside
// [a-z0-9] with a single hyphen and trims hyphens from both ends.
func GenerateSlug(name string) string {
	s := slugSeparatorRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// NormalizeUsername strips characters outside [A-Za-z0-9_] and truncates the
// result to MaxUsernameLength.
func NormalizeUsername(raw string) string {
	s := usernameInvalidRe.ReplaceAllString(raw, "")
	if len(s) > MaxUsernameLength {
		s = s[:MaxUsernameLength]
	}
	return s
}

// ValidSlug reports whether s is already in GenerateSlug's output form.
func ValidSlug(s string) bool {
	return slugRe.MatchString(s)
}

// ValidUsername reports whether s is a non-empty normalized username.
func ValidUsername(s string) bool {
	return usernameRe.MatchString(s)
}
