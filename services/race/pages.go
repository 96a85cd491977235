package race

import (
	"net/url"
	"strings"
)

// CanonicalTitle normalizes a page title to its canonical form:
// percent-decoded, with underscores mapped to spaces. Titles that fail
// to percent-decode are kept as-is (minus the underscores).
func CanonicalTitle(title string) string {
	decoded, err := url.PathUnescape(title)
	if err != nil {
		decoded = title
	}
	return strings.ReplaceAll(decoded, "_", " ")
}

// SamePage compares two titles by canonical form, case-insensitively.
func SamePage(a, b string) bool {
	return strings.EqualFold(CanonicalTitle(a), CanonicalTitle(b))
}
