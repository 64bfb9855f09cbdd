package extract

import (
	"regexp"
	"strings"

	"comprovantes-renamer/internal/textutil"
)

// fallbackPattern is a looser, anchor-only rule used when the primary
// registry validates nothing. Scores only rank patterns inside this pass.
type fallbackPattern struct {
	name  string
	score int
	re    *regexp.Regexp
}

var fallbackPatterns = []fallbackPattern{
	{"controle-pagamento", 105, regexp.MustCompile(`(?is)CONTROLE DE PAGAMENTO\s+BENEFICI[AÁ]RIO:\s*([A-Z0-9.\-&\s()/ÇÃÕÉÊÍÓÚÀÂ]{5,120})`)},
	{"conta-barra-nome", 100, regexp.MustCompile(`(?is)CONTA[:\s]*[^\n/]+/\s*([A-Z0-9.\-&\s()/]{5,120})`)},
	{"credito-nome", 95, regexp.MustCompile(`(?is)CR[EÉ]DITO[:\s\S]{0,300}?NOME[:\s]*([A-Z0-9.\-&\s()/]{5,120})`)},
	{"debito-nome", 94, regexp.MustCompile(`(?is)D[EÉ]BITO[:\s\S]{0,300}?NOME[:\s]*([A-Z0-9.\-&\s()/]{5,120})`)},
	{"quem-recebeu-nome", 92, regexp.MustCompile(`(?is)DADOS DE QUEM RECEBEU[\s\S]{0,200}?NOME[:\s]*([A-Z0-9.\-&\s()/]{5,120})`)},
	{"favorecido", 90, regexp.MustCompile(`(?is)FAVORECIDO[:\s]*([A-Z0-9.\-&\s()/]{5,120})`)},
	{"razao-social-beneficiario", 88, regexp.MustCompile(`(?is)RAZ[ÃA]O\s+SOCIAL\s+BENEFICIAR?IO(?:\s+FINAL)?[:\s]*([A-Z0-9.\-&\s()/]{5,120})`)},
	{"empresa-orgao", 85, regexp.MustCompile(`(?is)EMPRESA\s*/?\s*[ÓO]RG[ÃA]O[:\s]*([A-Z0-9.\-&\s()/]{5,120})`)},
	{"para-nome", 80, regexp.MustCompile(`(?is)\bPARA[:\s]*([A-Z0-9.\-&\s()/]{5,120})`)},
}

// Lines matching these are banking metadata, never payee names.
var reJargonLine = regexp.MustCompile(`\b(AGENCIA|CONTA|CPF|CNPJ|CHAVE|BANC|VALOR|LOTE|NSU|LINHA|BARRAS|AUTENTICA)\b`)

var reUpperLetter = regexp.MustCompile(`[A-ZÀ-Ú]`)

// Nominal score of the longest-clean-line heuristic, below every anchored
// fallback pattern.
const longestLineScore = 50

// FallbackBeneficiary re-scans with looser anchors and, as a last resort,
// picks the longest jargon-free line that still looks like a name. Returns
// the winning pattern's name and score alongside the field.
func (e *Extractor) FallbackBeneficiary(text string) (Field, string, int) {
	if text == "" {
		return missing(ReasonEmptyText), "", 0
	}
	upper := strings.ToUpper(textutil.CollapseSpaces(text))

	for _, p := range fallbackPatterns {
		m := p.re.FindStringSubmatch(upper)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		name = textutil.CollapseSpaces(name)
		name = strings.Trim(name, " /-")
		name = strings.TrimSpace(reCPF.ReplaceAllString(reCNPJ.ReplaceAllString(name, ""), ""))
		// Recover the original casing when the capture can be located in the
		// source text; validation runs on what will actually be emitted.
		candidate := name
		if idx := strings.Index(strings.ToUpper(text), name); idx >= 0 && idx+len(name) <= len(text) {
			candidate = text[idx : idx+len(name)]
		}
		if e.validator.IsPlausibleName(candidate, 0) {
			return found(strings.ToUpper(textutil.CollapseSpaces(candidate))), "fallback-" + p.name, p.score
		}
	}

	if best := e.longestCleanLine(text); best != "" {
		return found(strings.ToUpper(textutil.CollapseSpaces(best))), "fallback-longest-line", longestLineScore
	}
	return missing(ReasonNoMatch), "", 0
}

func (e *Extractor) longestCleanLine(text string) string {
	var best string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if len(ln) < 6 {
			continue
		}
		upper := strings.ToUpper(ln)
		if !reUpperLetter.MatchString(upper) || reJargonLine.MatchString(upper) {
			continue
		}
		if e.validator.IsPlausibleName(ln, 0) && len(ln) > len(best) {
			best = ln
		}
	}
	return best
}
