// Package pipeline wires the extraction core together: one page of text in,
// one named, classified, occurrence-numbered result out.
package pipeline

import (
	"log/slog"

	"github.com/google/uuid"

	"comprovantes-renamer/constants"
	"comprovantes-renamer/internal/classify"
	"comprovantes-renamer/internal/config"
	"comprovantes-renamer/internal/extract"
	"comprovantes-renamer/internal/naming"
	"comprovantes-renamer/internal/textutil"
)

// Page is one single-page unit of input: where it came from and its text
// layer.
type Page struct {
	Source string
	Text   string
}

// PageResult is the full outcome for one page: the extracted fields, the
// payer bucket, the occurrence number and the output filename.
type PageResult struct {
	Source      string
	PayerCode   string
	Beneficiary string
	Amount      string
	Occurrence  int
	Filename    string
	Diag        extract.Diagnostics
}

// Processor runs pages through normalize -> extract -> classify -> count ->
// name. Sequential by design: the occurrence counter is the only mutable
// state and numbering follows input-presentation order.
type Processor struct {
	logger     *slog.Logger
	extractor  *extract.Extractor
	classifier *classify.Classifier
	counter    *naming.Counter
	builder    *naming.Builder
	runID      uuid.UUID
}

func NewProcessor(logger *slog.Logger, cfg *config.Config) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     logger,
		extractor:  extract.NewExtractor(cfg),
		classifier: classify.NewClassifier(cfg),
		counter:    naming.NewCounter(),
		builder:    naming.NewBuilder(cfg),
		runID:      uuid.New(),
	}
}

func (p *Processor) RunID() uuid.UUID { return p.runID }

// Process handles all pages in presentation order and returns one result per
// page. Malformed or empty pages produce sentinel results, never an abort.
func (p *Processor) Process(pages []Page) []PageResult {
	p.counter.Reset()
	p.logger.Info("pipeline.start", "run_id", p.runID, "pages", len(pages))

	results := make([]PageResult, 0, len(pages))
	for _, page := range pages {
		res := p.processPage(page)
		p.logger.Info("pipeline.page",
			"run_id", p.runID,
			"source", res.Source,
			"doc_type", res.Diag.DocType,
			"method", res.Diag.Method,
			"score", res.Diag.Score,
			"beneficiary", res.Beneficiary,
			"amount", res.Amount,
			"payer", res.PayerCode,
			"occurrence", res.Occurrence,
			"filename", res.Filename,
		)
		results = append(results, res)
	}
	p.logger.Info("pipeline.done", "run_id", p.runID, "pages", len(results))
	return results
}

func (p *Processor) processPage(page Page) PageResult {
	text := textutil.Clean(page.Text)

	ext := p.extractor.Extract(text)
	beneficiary := ext.Beneficiary.Value
	if !ext.Beneficiary.Found {
		beneficiary = constants.UnknownBeneficiary
	}
	amount := ext.Amount.Value
	if !ext.Amount.Found {
		amount = constants.AmountNotFound
	}
	payer := p.classifier.Classify(text)

	occ := p.counter.Next(naming.OccurrenceKey{
		PayerCode:   payer,
		Beneficiary: beneficiary,
		Amount:      amount,
	})
	filename := p.builder.Filename(beneficiary, amount, occ, p.builder.Snippet(text))

	return PageResult{
		Source:      page.Source,
		PayerCode:   payer,
		Beneficiary: beneficiary,
		Amount:      amount,
		Occurrence:  occ,
		Filename:    filename,
		Diag:        ext.Diag,
	}
}

// CollisionName proxies the builder's filesystem-collision fallback so the
// caller placing files does not need its own naming logic.
func (p *Processor) CollisionName(filename string, n int) string {
	return p.builder.CollisionName(filename, n)
}
