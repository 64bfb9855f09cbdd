package pipeline

import (
	"io"
	"log/slog"
	"testing"

	"comprovantes-renamer/constants"
	"comprovantes-renamer/internal/config"
)

const receiptText = "Comprovante de Pagamento\n" +
	"Pagador: FARMAUSA LIFE SCIENCE LTDA\n" +
	"Controle de Pagamento Beneficiário: MARIO PASTORE CPF/CNPJ: 123.456.789-00\n" +
	"Valor principal: R$ 8.000,00\n"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessSinglePage(t *testing.T) {
	p := NewProcessor(discardLogger(), config.Default())

	results := p.Process([]Page{{Source: "entrada/comp.pdf", Text: receiptText}})
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	r := results[0]

	if r.Beneficiary != "MARIO PASTORE" {
		t.Errorf("beneficiary = %q", r.Beneficiary)
	}
	if r.Amount != "8.000,00" {
		t.Errorf("amount = %q", r.Amount)
	}
	if r.PayerCode != "LIFE_SCIENCE" {
		t.Errorf("payer = %q", r.PayerCode)
	}
	if r.Occurrence != 1 {
		t.Errorf("occurrence = %d", r.Occurrence)
	}
	if r.Filename != "MARIO_PASTORE - 8.000,00.pdf" {
		t.Errorf("filename = %q", r.Filename)
	}
	if r.Diag.Method != "controle-pagamento-beneficiario" {
		t.Errorf("method = %q", r.Diag.Method)
	}
}

func TestProcessRepeatedPages(t *testing.T) {
	p := NewProcessor(discardLogger(), config.Default())

	pages := []Page{
		{Source: "a.pdf", Text: receiptText},
		{Source: "b.pdf", Text: receiptText},
		{Source: "c.pdf", Text: receiptText},
	}
	results := p.Process(pages)
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}

	wantNames := []string{
		"MARIO_PASTORE - 8.000,00.pdf",
		"N2 - MARIO_PASTORE - 8.000,00.pdf",
		"N3 - MARIO_PASTORE - 8.000,00.pdf",
	}
	for i, r := range results {
		if r.Occurrence != i+1 {
			t.Errorf("page %d occurrence = %d, want %d", i, r.Occurrence, i+1)
		}
		if r.Filename != wantNames[i] {
			t.Errorf("page %d filename = %q, want %q", i, r.Filename, wantNames[i])
		}
	}
}

func TestProcessCounterResetsPerRun(t *testing.T) {
	p := NewProcessor(discardLogger(), config.Default())

	first := p.Process([]Page{{Source: "a.pdf", Text: receiptText}})
	second := p.Process([]Page{{Source: "a.pdf", Text: receiptText}})
	if first[0].Occurrence != 1 || second[0].Occurrence != 1 {
		t.Errorf("occurrences across runs = %d, %d; want 1, 1",
			first[0].Occurrence, second[0].Occurrence)
	}
}

func TestProcessEmptyPage(t *testing.T) {
	p := NewProcessor(discardLogger(), config.Default())

	results := p.Process([]Page{{Source: "vazio.pdf", Text: ""}})
	r := results[0]

	if r.Beneficiary != constants.UnknownBeneficiary {
		t.Errorf("beneficiary = %q", r.Beneficiary)
	}
	if r.Amount != constants.AmountNotFound {
		t.Errorf("amount = %q", r.Amount)
	}
	if r.PayerCode != constants.PayerOther {
		t.Errorf("payer = %q", r.PayerCode)
	}
	want := constants.UnknownBeneficiary + " - " + constants.AmountNotFound + ".pdf"
	if r.Filename != want {
		t.Errorf("filename = %q, want %q", r.Filename, want)
	}
}

func TestProcessFallbackPage(t *testing.T) {
	p := NewProcessor(discardLogger(), config.Default())

	text := "RECIBO\nCOMERCIAL ABC DE MATERIAIS ELETRICOS\nreferente a serviços prestados\n"
	results := p.Process([]Page{{Source: "recibo.pdf", Text: text}})
	r := results[0]

	if r.Beneficiary != "COMERCIAL ABC DE MATERIAIS ELETRICOS" {
		t.Errorf("beneficiary = %q", r.Beneficiary)
	}
	if r.Amount != constants.AmountNotFound {
		t.Errorf("amount = %q", r.Amount)
	}
	if r.Diag.Method != "fallback-longest-line" {
		t.Errorf("method = %q", r.Diag.Method)
	}
	if r.Diag.Score != 50 {
		t.Errorf("score = %d, want 50", r.Diag.Score)
	}
}

func TestProcessDistinctRunIDs(t *testing.T) {
	a := NewProcessor(discardLogger(), config.Default())
	b := NewProcessor(discardLogger(), config.Default())
	if a.RunID() == b.RunID() {
		t.Error("two processors share a run ID")
	}
}
