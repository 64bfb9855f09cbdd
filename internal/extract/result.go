package extract

// Reason tags why a field came back without a value. The distinction between
// "no pattern matched" and "a pattern matched but the capture failed
// validation" matters when reviewing a batch downstream.
type Reason string

const (
	ReasonEmptyText Reason = "empty_text"
	ReasonNoMatch   Reason = "no_match"
	ReasonInvalid   Reason = "matched_invalid"
)

// Field is a best-effort extraction outcome: either a found value or a
// tagged absence. Absence is expected, not an error.
type Field struct {
	Value  string
	Found  bool
	Reason Reason
}

func found(v string) Field {
	return Field{Value: v, Found: true}
}

func missing(r Reason) Field {
	return Field{Reason: r}
}

// Candidate is a provisional extracted value with its detector's fixed
// reliability score. order records registration position for deterministic
// tie-breaking.
type Candidate struct {
	Text   string
	Score  int
	Method string
	order  int
}

// Diagnostics collects per-page extraction evidence for the debug log.
type Diagnostics struct {
	DocType        string
	Method         string
	Score          int
	CandidateCount int
	AmountMatches  []string
	AmountSelected string
}

// Result carries the two extracted fields plus diagnostics for one page.
type Result struct {
	Beneficiary Field
	Amount      Field
	Diag        Diagnostics
}
