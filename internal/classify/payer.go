// Package classify buckets a receipt under the paying business unit by
// matching configured alias substrings against the page text.
package classify

import (
	"strings"

	"comprovantes-renamer/constants"
	"comprovantes-renamer/internal/config"
)

type payerUnit struct {
	code    string
	aliases []string // upper-cased
}

// Classifier resolves the business-unit code for a page. Total and
// deterministic: units are checked in configuration order, the first alias
// hit wins, and no hit means the generic bucket.
type Classifier struct {
	units []payerUnit
}

func NewClassifier(cfg *config.Config) *Classifier {
	c := &Classifier{units: make([]payerUnit, 0, len(cfg.PayerUnits))}
	for _, u := range cfg.PayerUnits {
		up := payerUnit{code: u.Code}
		for _, a := range u.Aliases {
			up.aliases = append(up.aliases, strings.ToUpper(a))
		}
		c.units = append(c.units, up)
	}
	return c
}

// Classify returns the first unit whose alias occurs in the text, or
// constants.PayerOther.
func (c *Classifier) Classify(text string) string {
	upper := strings.ToUpper(text)
	for _, u := range c.units {
		for _, a := range u.aliases {
			if strings.Contains(upper, a) {
				return u.code
			}
		}
	}
	return constants.PayerOther
}
