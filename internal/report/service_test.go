package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"comprovantes-renamer/internal/extract"
	"comprovantes-renamer/internal/pipeline"
)

func sampleResults() []pipeline.PageResult {
	return []pipeline.PageResult{
		{
			Source:      "temp_parts/comp_part1.pdf",
			PayerCode:   "LIFE_SCIENCE",
			Beneficiary: "MARIO PASTORE",
			Amount:      "8.000,00",
			Occurrence:  1,
			Filename:    "MARIO_PASTORE - 8.000,00.pdf",
			Diag: extract.Diagnostics{
				Method:         "controle-pagamento-beneficiario",
				Score:          22,
				CandidateCount: 1,
				AmountSelected: "principal=8.000,00",
			},
		},
		{
			Source:      "temp_parts/comp_part2.pdf",
			PayerCode:   "OUTROS",
			Beneficiary: "FORNECEDOR_DESCONHECIDO",
			Amount:      "VALOR_NAO_ENCONTRADO",
			Occurrence:  1,
			Filename:    "FORNECEDOR_DESCONHECIDO - VALOR_NAO_ENCONTRADO.pdf",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := NewService(nil).WriteCSV(path, sampleResults()); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = ';'
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][1] != "empresa" || rows[0][4] != "nome_final" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "comp_part1.pdf" {
		t.Errorf("source column keeps full path: %q", rows[1][0])
	}
	if rows[1][3] != "8.000,00" {
		t.Errorf("amount = %q", rows[1][3])
	}
	if rows[2][2] != "FORNECEDOR_DESCONHECIDO" {
		t.Errorf("sentinel row = %v", rows[2])
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := NewService(nil).WriteXLSX(path, uuid.New(), sampleResults()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty workbook written")
	}
}

func TestWriteDebugLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.txt")
	id := uuid.New()
	if err := NewService(nil).WriteDebugLog(path, id, sampleResults()); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(raw)
	for _, want := range []string{
		id.String(),
		"method: controle-pagamento-beneficiario",
		"amount_selected: principal=8.000,00",
		"beneficiary: FORNECEDOR_DESCONHECIDO",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("debug log missing %q", want)
		}
	}
	if got := strings.Count(text, strings.Repeat("=", 60)); got != 2 {
		t.Errorf("page separators = %d, want 2", got)
	}
}
