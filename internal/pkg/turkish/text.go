// Package turkish holds the small amount of locale-aware text handling the
// classifier and the reply formatters share.
package turkish

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dotted capitals fold to a plain "i" so that "İstanbul" and "ISTANBUL"
// both match keyword lists written in lowercase.
var capitalI = strings.NewReplacer("İ", "i", "I", "i")

var whitespace = regexp.MustCompile(`\s+`)

var titleCaser = cases.Title(language.Turkish)

// Lower lowercases s for pattern matching.
func Lower(s string) string {
	return strings.ToLower(capitalI.Replace(s))
}

// Normalize lowercases and trims.
func Normalize(s string) string {
	return strings.TrimSpace(Lower(s))
}

// CleanMessage joins the non-blank trimmed lines of s with single spaces.
func CleanMessage(s string) string {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(strings.Join(kept, " "), " "))
}

// Title capitalizes each word using Turkish casing rules ("izmir" -> "İzmir").
func Title(s string) string {
	return titleCaser.String(s)
}
