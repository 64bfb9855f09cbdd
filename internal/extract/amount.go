package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPattern ties a regex to a specificity rank; a lower priority number
// means a more specific anchor and beats any higher number.
type amountPattern struct {
	re       *regexp.Regexp
	priority int
	label    string
}

var amountPatterns = []amountPattern{
	{regexp.MustCompile(`(?i)Valor\s+principal[:\s]*R?\$?\s*([\d.,]+)`), 1, "principal"},
	{regexp.MustCompile(`(?i)Valor\s+total\s+pago[:\s]*R?\$?\s*([\d.,]+)`), 1, "total_pago"},
	{regexp.MustCompile(`(?i)Valor\s+do\s+pagamento[:\s]*R?\$?\s*([\d.,]+)`), 2, "pagamento"},
	{regexp.MustCompile(`(?i)Valor\s+total[:\s]*R?\$?\s*([\d.,]+)`), 3, "total"},
	{regexp.MustCompile(`(?i)Favorecido:.*?Valor[:\s]*R?\$?\s*([\d.,]+)`), 2, "favorecido_valor"},
	{regexp.MustCompile(`(?i)(?:^|\n)Valor[:\s]*R?\$?\s*([\d.,]+)`), 4, "valor_linha"},
	{regexp.MustCompile(`(?i)Valor:R\$\s*([\d.,]+)`), 1, "valor_compacto"},
}

var (
	// A Brazilian-format figure wedged between a tax identifier and the
	// zero-fee marker; the most reliable anchor on inline PIX layouts.
	reAmountAfterTaxID = regexp.MustCompile(`(?i)(?:\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}|\d{3}\.\d{3}\.\d{3}-\d{2})\s+(\d{1,3}(?:\.\d{3})*,\d{2})\s+R\$0,00`)
	reAmountBeforeFee  = regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d{3})*,\d{2})\s+R\$0,00`)

	// Bare "R$ n". Go's regexp has no lookahead; the trailing-word exclusion
	// (Juros/Multa/Desconto/Bonif) is checked manually on the match tail.
	reBareCurrency   = regexp.MustCompile(`(?i)R\$\s*([\d.,]+)`)
	reExcludedSuffix = regexp.MustCompile(`(?i)^\s*(?:Juros|Multa|Desconto|Bonif)`)
)

type amountCandidate struct {
	display  string
	value    float64
	priority int
	label    string
}

// parseBrazilianAmount parses "1.234,56" into 1234.56. Returns false for
// unparsable or non-positive captures; those are silently discarded.
func parseBrazilianAmount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ExtractAmount scans the priority-ordered pattern table and returns the most
// specific positive amount in its original decimal-comma display form.
func (e *Extractor) ExtractAmount(text string, diag *Diagnostics) Field {
	if text == "" {
		return missing(ReasonEmptyText)
	}

	var cands []amountCandidate
	add := func(raw string, priority int, label string) {
		v, ok := parseBrazilianAmount(raw)
		if !ok {
			return
		}
		cands = append(cands, amountCandidate{
			display:  strings.TrimSpace(raw),
			value:    v,
			priority: priority,
			label:    label,
		})
	}

	if m := reAmountAfterTaxID.FindStringSubmatch(text); m != nil {
		add(m[1], 0, "apos_documento")
	} else if m := reAmountBeforeFee.FindStringSubmatch(text); m != nil {
		add(m[1], 0, "antes_tarifa_zero")
	}

	for _, p := range amountPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			add(m[1], p.priority, p.label)
		}
	}
	for _, loc := range reBareCurrency.FindAllStringSubmatchIndex(text, -1) {
		if reExcludedSuffix.MatchString(text[loc[1]:]) {
			continue
		}
		add(text[loc[2]:loc[3]], 5, "rs_isolado")
	}

	if diag != nil {
		for _, c := range cands {
			diag.AmountMatches = append(diag.AmountMatches, c.label+"="+c.display)
		}
	}
	if len(cands) == 0 {
		return missing(ReasonNoMatch)
	}

	// Dedupe by numeric value keeping the most specific candidate, then pick
	// the globally most specific. First in scan order wins ties.
	byValue := make(map[float64]amountCandidate, len(cands))
	var order []float64
	for _, c := range cands {
		cur, seen := byValue[c.value]
		if !seen {
			byValue[c.value] = c
			order = append(order, c.value)
		} else if c.priority < cur.priority {
			byValue[c.value] = c
		}
	}
	best := byValue[order[0]]
	for _, v := range order[1:] {
		if byValue[v].priority < best.priority {
			best = byValue[v]
		}
	}
	if diag != nil {
		diag.AmountSelected = best.label + "=" + best.display
	}
	return found(best.display)
}
