package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures maps codepoints that PDF text layers commonly carry instead of
// their plain equivalents. U+2028 (line separator) shows up in some bank
// layouts where a newline is meant.
var ligatures = strings.NewReplacer(
	"ﬁ", "fi",
	"ﬂ", "fl",
	"\u2028", " ",
)

var reSpaces = regexp.MustCompile(`\s+`)

// Clean replaces ligature and line-separator codepoints with plain
// equivalents and applies NFKC composition. Idempotent: Clean(Clean(s)) ==
// Clean(s). Empty input yields empty output.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	return norm.NFKC.String(ligatures.Replace(s))
}

// CollapseSpaces folds any whitespace run into a single space.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics decomposes the string and drops combining marks, so
// "João" becomes "Joao". Input that fails to transform is returned as is.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}
