package naming

import (
	"fmt"
	"regexp"
	"strings"

	"comprovantes-renamer/constants"
	"comprovantes-renamer/internal/config"
)

var (
	reBarcodeHint = regexp.MustCompile(`(?i)LINHA\s+DIGIT|CODIGO\s+DE\s+BARRAS|NOSSO\s+N`)
	reDigitRun    = regexp.MustCompile(`[0-9]{20,60}`)
	reAnySpace    = regexp.MustCompile(`\s+`)
)

// Builder assembles output filenames from extraction results. Pure aside
// from the Counter handle the caller passes in.
type Builder struct {
	maxLen    int
	tailLen   int
	marker    string
	extension string
}

func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		maxLen:    cfg.MaxFilenameLen,
		tailLen:   cfg.BarcodeTailLen,
		marker:    cfg.DuplicateMarker,
		extension: cfg.OutputExtension,
	}
}

// Snippet returns the trailing digits of a barcode or linha digitável run
// when the page mentions one; used to disambiguate billing slips that share
// payee and amount. Empty when the page has no such reference.
func (b *Builder) Snippet(text string) string {
	if !reBarcodeHint.MatchString(text) {
		return ""
	}
	seq := reDigitRun.FindString(reAnySpace.ReplaceAllString(text, ""))
	if seq == "" {
		return ""
	}
	if len(seq) > b.tailLen {
		return seq[len(seq)-b.tailLen:]
	}
	return seq
}

// Filename builds "{beneficiary} - {amount}.pdf", inserting the snippet when
// present and prefixing "{marker}{occurrence} - " from the second occurrence
// on. amount must already be the display string or the not-found sentinel.
func (b *Builder) Filename(beneficiary, amount string, occurrence int, snippet string) string {
	stem := Sanitize(beneficiary, b.maxLen)
	if amount == "" {
		amount = constants.AmountNotFound
	}
	base := stem + " - " + amount
	if snippet != "" {
		base = stem + " - " + snippet + " - " + amount
	}
	if occurrence > 1 {
		return fmt.Sprintf("%s%d - %s%s", b.marker, occurrence, base, b.extension)
	}
	return base + b.extension
}

// CollisionName derives the fallback name used when the target path already
// exists on disk: "{base}_{n}.pdf".
func (b *Builder) CollisionName(filename string, n int) string {
	stem := strings.TrimSuffix(filename, b.extension)
	return fmt.Sprintf("%s_%d%s", stem, n, b.extension)
}
