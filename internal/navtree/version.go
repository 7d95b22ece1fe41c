package navtree

import (
	"regexp"
	"strings"
)

// versionPattern matches semantic-version-like tokens, optionally prefixed
// with "v". The patch component may be the literal X.
var versionPattern = regexp.MustCompile(`(?i)\bv?(?:0|[1-9][0-9]*)\.(?:0|[1-9][0-9]*)\.(?:X|0|[1-9][0-9]*)(?:-[\da-z\-]+(?:\.[\da-z\-]+)*)?(?:\+[\da-z\-]+(?:\.[\da-z\-]+)*)?\b`)

// IsVersionSegment reports whether a path segment identifies a version.
func IsVersionSegment(segment string) bool {
	return segment != "" && versionPattern.MatchString(segment)
}

// StripVersion removes the first version token from url and collapses the
// resulting double slash.
func StripVersion(url string) string {
	loc := versionPattern.FindStringIndex(url)
	if loc == nil {
		return url
	}
	stripped := url[:loc[0]] + url[loc[1]:]
	for strings.Contains(stripped, "//") {
		stripped = strings.ReplaceAll(stripped, "//", "/")
	}
	return stripped
}
