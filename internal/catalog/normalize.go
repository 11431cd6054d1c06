package catalog

import (
	"regexp"
	"strings"
)

var multipleSpaceRe = regexp.MustCompile(`\s+`)

// Normalize lowercases, trims and collapses whitespace. It is the single
// normalization applied wherever genres, moods or artist names are
// compared: index build, request parsing and taxonomy lookup all go
// through here so spelling variants reconcile the same way everywhere.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return multipleSpaceRe.ReplaceAllString(s, " ")
}

// NormalizeAll maps Normalize over a slice, dropping entries that
// normalize to the empty string. Duplicates are preserved.
func NormalizeAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if n := Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}
