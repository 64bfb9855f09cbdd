package extract

import (
	"regexp"
	"strings"

	"comprovantes-renamer/internal/config"
)

var (
	reHasLetter = regexp.MustCompile(`[a-zA-Z]`)
	reNonName   = regexp.MustCompile(`^[\d.\-*\s]+$`)
	reLetterRun = regexp.MustCompile(`[a-zA-Z]{5,}`)
)

// Validator decides whether a capture is a plausible party name. Every
// detector funnels through it so field labels and banking metadata never
// leak into output filenames.
type Validator struct {
	rejectEntities []string // upper-cased
	jargon         []string // lower-cased
	minLen         int
}

func NewValidator(cfg *config.Config) *Validator {
	v := &Validator{minLen: cfg.MinNameLen}
	for _, e := range cfg.RejectEntities {
		v.rejectEntities = append(v.rejectEntities, strings.ToUpper(e))
	}
	for _, j := range cfg.JargonTokens {
		v.jargon = append(v.jargon, strings.ToLower(j))
	}
	return v
}

// IsPlausibleName applies every rule; all must pass. minLen <= 0 falls back
// to the configured default (5). Stricter detectors pass 8.
func (v *Validator) IsPlausibleName(name string, minLen int) bool {
	if minLen <= 0 {
		minLen = v.minLen
	}
	if name == "" || len(name) < minLen {
		return false
	}
	if !reHasLetter.MatchString(name) {
		return false
	}
	if reNonName.MatchString(name) {
		return false
	}

	upper := strings.ToUpper(name)
	for _, e := range v.rejectEntities {
		if strings.Contains(upper, e) {
			return false
		}
	}

	lower := strings.ToLower(name)
	for _, j := range v.jargon {
		if lower == j || strings.HasPrefix(lower, j+" ") {
			return false
		}
	}

	if len(strings.Fields(name)) >= 2 {
		return true
	}
	return reLetterRun.MatchString(name)
}
