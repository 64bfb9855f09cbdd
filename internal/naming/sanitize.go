// Package naming builds the canonical output filename for a processed page:
// sanitized beneficiary, amount, duplicate marker and optional document
// snippet.
package naming

import (
	"regexp"
	"strings"

	"comprovantes-renamer/constants"
	"comprovantes-renamer/internal/textutil"
)

var (
	reIllegal  = regexp.MustCompile(`[\\/:*?"<>|]`)
	reDisallow = regexp.MustCompile(`[^0-9A-Za-z_\-\s()\[\]]`)
)

// Sanitize turns a beneficiary name into a filesystem-safe stem: diacritics
// stripped, illegal and non-allow-listed characters removed, whitespace
// collapsed to underscores, truncated to maxLen. Empty results fall back to
// the unknown-supplier sentinel so a filename is always produced.
func Sanitize(name string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = constants.MaxNameLen
	}
	s := strings.TrimSpace(name)
	s = textutil.StripDiacritics(s)
	s = reIllegal.ReplaceAllString(s, "")
	s = reDisallow.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), "_")
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	if s == "" {
		return constants.UnknownBeneficiary
	}
	return s
}
