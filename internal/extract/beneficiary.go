package extract

import (
	"regexp"
	"strings"

	"comprovantes-renamer/internal/config"
	"comprovantes-renamer/internal/textutil"
)

var (
	reCNPJ = regexp.MustCompile(`\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}`)
	reCPF  = regexp.MustCompile(`\d{3}\.\d{3}\.\d{3}-\d{2}`)
)

// scanText bundles the views of a page the detectors match against: the
// cleaned raw text (line structure intact) and a whitespace-collapsed copy.
type scanText struct {
	raw       string
	collapsed string
	upper     string
}

// detector is one layout-specific extraction rule. Detectors are registered
// in a fixed order; registration position breaks score ties.
type detector struct {
	name    string
	score   int
	minLen  int // 0 = validator default
	docType string
	gate    func(s scanText) bool       // nil = always runs
	match   func(s scanText) []string   // raw captures, possibly several
	clean   func(capture string) string // layout-specific pre-cleanup
	skip    func(upperName string) bool // layout-specific rejection
}

// Extractor runs the detector registry over one page of receipt text.
type Extractor struct {
	cfg       *config.Config
	validator *Validator
	detectors []detector
}

func NewExtractor(cfg *config.Config) *Extractor {
	e := &Extractor{cfg: cfg, validator: NewValidator(cfg)}
	e.detectors = buildDetectors(cfg)
	return e
}

func (e *Extractor) Validator() *Validator { return e.validator }

// Extract runs beneficiary and amount extraction over one page. The fallback
// beneficiary pass runs only when the primary registry yields nothing.
func (e *Extractor) Extract(text string) Result {
	var r Result
	r.Beneficiary = e.ExtractBeneficiary(text, &r.Diag)
	if !r.Beneficiary.Found {
		if fb, method, score := e.FallbackBeneficiary(text); fb.Found {
			r.Beneficiary = fb
			r.Diag.Method = method
			r.Diag.Score = score
		}
	}
	r.Amount = e.ExtractAmount(text, &r.Diag)
	return r
}

// ExtractBeneficiary collects validated candidates from every detector and
// picks the best-scored one. Ties go to the first-registered detector.
func (e *Extractor) ExtractBeneficiary(text string, diag *Diagnostics) Field {
	if text == "" {
		return missing(ReasonEmptyText)
	}
	s := scanText{
		raw:       text,
		collapsed: textutil.CollapseSpaces(text),
		upper:     strings.ToUpper(text),
	}

	var cands []Candidate
	matchedAny := false
	seq := 0
	for i, d := range e.detectors {
		if d.gate != nil && !d.gate(s) {
			continue
		}
		for _, capture := range d.match(s) {
			matchedAny = true
			name := capture
			if d.clean != nil {
				name = d.clean(name)
			}
			name = strings.ToUpper(textutil.CollapseSpaces(name))
			name = strings.TrimSpace(reCPF.ReplaceAllString(reCNPJ.ReplaceAllString(name, ""), ""))
			if d.skip != nil && d.skip(name) {
				continue
			}
			if alias, ok := e.cfg.NameAliases[name]; ok {
				name = strings.ToUpper(alias)
			}
			if !e.validator.IsPlausibleName(name, d.minLen) {
				continue
			}
			if d.docType != "" && diag != nil && diag.DocType == "" {
				diag.DocType = d.docType
			}
			cands = append(cands, Candidate{Text: name, Score: d.score, Method: d.name, order: i})
			seq++
		}
	}

	if diag != nil {
		diag.CandidateCount = len(cands)
	}
	best, ok := selectBest(cands)
	if !ok {
		if matchedAny {
			return missing(ReasonInvalid)
		}
		return missing(ReasonNoMatch)
	}
	if diag != nil {
		diag.Method = best.Method
		diag.Score = best.Score
	}
	return found(best.Text)
}

type rankedCandidate struct {
	c   Candidate
	seq int
}

func (a rankedCandidate) beats(b rankedCandidate) bool {
	if a.c.Score != b.c.Score {
		return a.c.Score > b.c.Score
	}
	if a.c.order != b.c.order {
		return a.c.order < b.c.order
	}
	return a.seq < b.seq
}

// selectBest dedupes candidates by normalized text keeping the max score per
// group, then picks the global maximum. Ties break on registration order,
// then on capture order, so selection is fully deterministic.
func selectBest(cands []Candidate) (Candidate, bool) {
	groups := make(map[string]rankedCandidate, len(cands))
	for i, c := range cands {
		cur, ok := groups[c.Text]
		if !ok || c.Score > cur.c.Score {
			groups[c.Text] = rankedCandidate{c: c, seq: i}
		}
	}
	var best rankedCandidate
	have := false
	for _, g := range groups {
		if !have || g.beats(best) {
			best = g
			have = true
		}
	}
	return best.c, have
}

func containsFold(haystack scanText, needle string) bool {
	return strings.Contains(haystack.upper, strings.ToUpper(needle))
}

func firstCapture(re *regexp.Regexp) func(scanText) []string {
	return func(s scanText) []string {
		if m := re.FindStringSubmatch(s.collapsed); m != nil {
			return []string{m[1]}
		}
		return nil
	}
}

func firstCaptureRaw(re *regexp.Regexp) func(scanText) []string {
	return func(s scanText) []string {
		if m := re.FindStringSubmatch(s.raw); m != nil {
			return []string{m[1]}
		}
		return nil
	}
}

var (
	reControle          = regexp.MustCompile(`(?i)Controle\s+de\s+Pagamento\s+Benefici[aá]rio:\s*([A-ZÀ-ÚÇ][A-ZÀ-ÚÇ\s.\-()0-9]+?)(?:\s*CPF/CNPJ:|\s*Controle:|\s*$)`)
	reRecebeu           = regexp.MustCompile(`(?is)Dados\s+de\s+quem\s+recebeu.*?Nome:\s*([A-ZÀ-ÚÇ][A-ZÀ-ÚÇ\s.\-()]+?)(?:\s*CPF/CNPJ:|\s*Institui[çc][aã]o|\s*$)`)
	reCreditoTED        = regexp.MustCompile(`(?is)Cr[ée]dito:\s*Nome:\s*([A-Z][A-Z\s.\-]{5,100}?)(?:\s*CPF/CNPJ|\s*Instituição|\s*Chave|\s*Agência|\s*Conta|$)`)
	rePixLabeled        = regexp.MustCompile(`(?is)(?:Dados de quem recebeu|Destina\s*t[aá]rio\s*:).*?Nome\s*:\s*([A-Z][A-Z\s.\-]{5,100}?)(?:\s*CPF/CNPJ|\s*Instituição|\s*Chave|\s*Agência|\s*Conta|$)`)
	rePixInverted       = regexp.MustCompile(`(?is)(?:CPF/CNPJ|CNPJ)?:?\s*([A-Z][A-Z\s.\-]{5,100}?)\s*Nome:`)
	reSantanderPix      = regexp.MustCompile(`(?is)Dados do recebedor Para\s*(?:[0-9\s]+)?\s*([A-Z][A-Z\s\-().]{5,100}?)(?:\s*Chave|\s*CPF/CNPJ|\s*Agência|\s*Conta|$)`)
	reBoletoReverso     = regexp.MustCompile(`(?i)([A-Z][A-Z\s\-().]{5,100}?)\s+Raz[aã]o\s+Social\s+Benefici[aá]rio(?:\s+Final)?\s*:`)
	reSicoobPayee       = regexp.MustCompile(`(?is)(?:Nome/Raz[aã]o Social:|Conv[êe]nio:|Benefici[aá]rio:|Nome:)\s*([A-Z0-9\s.\-]+?)(?:\s*Nome Fantasia|\s*CPF/CNPJ|\s*Pagador|\s*Cr[ée]dito:|\s*Autentica[çc][aã]o|$)`)
	reSantanderOriginal = regexp.MustCompile(`(?is)Benefici[aá]rio Original.*?Raz[aã]o Social:\s*([A-Z][A-Z\s\-()]+?)(?:\s*Nome Fantasia|\s*Dados do Pagador)`)
	reImpostoGate       = regexp.MustCompile(`(?i)IMPOSTO|TAXA`)
	reImpostoOrgao      = regexp.MustCompile(`(?i)Empresa[\\/\s]+[OÓ]rg[aã]o[:\s]+([A-Z][A-Z0-9\-\s]{5,50}?)(?:\s*\d{2}\.\d{3}|\s*Codigo|\s*CNPJ)`)
	reImpostoRJ         = regexp.MustCompile(`(?i)\b(RJ-[A-Z\s]+(?:ELETRONICA|DIGITAL)?)\b`)
	reSicoobBoleto      = regexp.MustCompile(`(?is)Benefici[aá]rio:\s*Nome/Raz[aã]o\s*Social:\s*([A-Z][A-Z\s.\-]{5,100}?)(?:\s*CPF/CNPJ|\s*Instituição|\s*Chave|\s*Agência|\s*Conta|$)`)
	reRazaoForward      = regexp.MustCompile(`(?i)Raz[aã]o\s+Social\s+Benefici[aá]rio[:\s]+([A-Z][A-Z\s]+LTDA|[A-Z][A-Z\s]+S\.?A\.?|[A-Z][A-Z\s]{10,60}?)(?:\s*(?:013|037|CPF|CNPJ|Nome|Banco|\d{3}\.\d{3}))`)
	reBenefFinal        = regexp.MustCompile(`(?i)Benefici[aá]rio\s+Final[:\s]+([A-Z][A-Z\s]+?)(?:\s*(?:CPF|CNPJ|Razao|\d{3}\.\d{3}))`)
	reFavorecido        = regexp.MustCompile(`(?i)Favorecido[:\s]+([A-Z][A-Z\s]+?)(?:\s+Valor|\s+CNPJ|\s+CPF)`)

	// Names captured by the loose recipient patterns carry stray punctuation;
	// keep letters, spaces and dots only.
	rePixNoise = regexp.MustCompile(`(?i)[^A-Z\s.]`)
)

func pixClean(s string) string {
	return rePixNoise.ReplaceAllString(s, " ")
}

func gateBoleto(s scanText) bool {
	return strings.Contains(s.raw, "Boleto") ||
		strings.Contains(s.raw, "Beneficiário") ||
		strings.Contains(s.raw, "Razão Social")
}

func buildDetectors(cfg *config.Config) []detector {
	ds := []detector{
		{
			name:    "controle-pagamento-beneficiario",
			score:   22,
			docType: "PIX-CONTROLE",
			match:   firstCapture(reControle),
		},
		{
			name:  "recebedor-apos-cnpj-pagador",
			score: 21,
			gate:  func(s scanText) bool { return len(cfg.PayerTaxIDs) > 0 },
			match: payerTaxIDMatcher(cfg.PayerTaxIDs),
		},
		{
			name:    "dados-de-quem-recebeu",
			score:   20,
			docType: "PIX",
			gate:    func(s scanText) bool { return containsFold(s, "bradesco") },
			match:   firstCapture(reRecebeu),
		},
		{
			name:  "credito-nome",
			score: 19,
			match: firstCapture(reCreditoTED),
		},
		{
			name:    "pix-recebedor",
			score:   15,
			minLen:  8,
			docType: "PIX",
			gate:    func(s scanText) bool { return strings.Contains(s.upper, "PIX") },
			match:   firstCaptureRaw(rePixLabeled),
			clean:   pixClean,
		},
		{
			name:   "pix-recebedor-invertido",
			score:  14,
			minLen: 8,
			gate: func(s scanText) bool {
				return strings.Contains(s.upper, "PIX") && !rePixLabeled.MatchString(s.raw)
			},
			match: firstCapture(rePixInverted),
			clean: pixClean,
		},
		{
			name:   "recebedor-para",
			score:  13,
			minLen: 8,
			match:  firstCapture(reSantanderPix),
		},
		{
			name:   "razao-social-reversa",
			score:  12,
			minLen: 8,
			match:  firstCapture(reBoletoReverso),
		},
		{
			name:    "sicoob-beneficiario",
			score:   10,
			docType: "SICOOB",
			gate:    func(s scanText) bool { return strings.Contains(s.upper, "SICOOB") },
			match:   firstCaptureRaw(reSicoobPayee),
			// The co-op bank's own long-form name shows up in this block on
			// some layouts; it is never the payee.
			skip: func(name string) bool { return strings.Contains(name, "SISTEMA DE COOPERATIVAS") },
		},
		{
			name:    "beneficiario-original",
			score:   10,
			docType: "TITULO",
			gate: func(s scanText) bool {
				return strings.Contains(s.raw, "Santander") && strings.Contains(s.raw, "Dados do Beneficiário Original")
			},
			match: firstCapture(reSantanderOriginal),
		},
		{
			name:    "imposto-orgao",
			score:   10,
			docType: "IMPOSTO",
			gate:    func(s scanText) bool { return reImpostoGate.MatchString(s.raw) },
			match:   firstCapture(reImpostoOrgao),
		},
		{
			name:    "imposto-guia-rj",
			score:   9,
			docType: "IMPOSTO",
			gate:    func(s scanText) bool { return reImpostoGate.MatchString(s.raw) },
			match: func(s scanText) []string {
				var out []string
				for _, m := range reImpostoRJ.FindAllStringSubmatch(s.collapsed, -1) {
					out = append(out, m[1])
				}
				return out
			},
		},
		{
			name:    "boleto-sicoob",
			score:   10,
			docType: "BOLETO",
			gate:    gateBoleto,
			match:   firstCapture(reSicoobBoleto),
		},
		{
			name:   "razao-social-forward",
			score:  10,
			minLen: 8,
			gate:   gateBoleto,
			match:  firstCapture(reRazaoForward),
		},
		{
			name:   "beneficiario-final",
			score:  9,
			minLen: 8,
			gate:   gateBoleto,
			match:  firstCapture(reBenefFinal),
		},
		{
			name:    "favorecido",
			score:   10,
			docType: "TRANSFERENCIA",
			match:   firstCapture(reFavorecido),
		},
	}
	return ds
}

// payerTaxIDMatcher captures the name printed between the paying company's
// tax ID and the recipient's own CPF/CNPJ, a layout used by instant-transfer
// receipts that list both parties inline.
func payerTaxIDMatcher(taxIDs []string) func(scanText) []string {
	res := make([]*regexp.Regexp, 0, len(taxIDs))
	for _, id := range taxIDs {
		res = append(res, regexp.MustCompile(
			`(?i)`+regexp.QuoteMeta(id)+`\s+([A-ZÀ-ÚÇ][A-ZÀ-ÚÇ\s.\-()]+?)(?:\s+\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}|\s+\d{3}\.\d{3}\.\d{3}-\d{2}|\s*$)`))
	}
	return func(s scanText) []string {
		for _, re := range res {
			if m := re.FindStringSubmatch(s.collapsed); m != nil {
				return []string{m[1]}
			}
		}
		return nil
	}
}
