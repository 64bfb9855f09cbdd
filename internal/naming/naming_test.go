package naming

import (
	"strings"
	"testing"

	"comprovantes-renamer/constants"
	"comprovantes-renamer/internal/config"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "MARIO PASTORE", "MARIO_PASTORE"},
		{"diacritics and punctuation", "João & Cia. Ltda/Matriz", "Joao_Cia_LtdaMatriz"},
		{"accented uppercase", "INSTITUIÇÃO SÃO PAULO", "INSTITUICAO_SAO_PAULO"},
		{"surrounding space", "  ACME  LTDA  ", "ACME_LTDA"},
		{"kept brackets", "EMPRESA (FILIAL) [SP]", "EMPRESA_(FILIAL)_[SP]"},
		{"only symbols", "***//??", constants.UnknownBeneficiary},
		{"empty", "", constants.UnknownBeneficiary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in, 60); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("ABCDE ", 20)
	got := Sanitize(long, 60)
	if len(got) != 60 {
		t.Errorf("len = %d, want 60", len(got))
	}
	if got := Sanitize(long, 0); len(got) != constants.MaxNameLen {
		t.Errorf("default max: len = %d, want %d", len(got), constants.MaxNameLen)
	}
}

func TestCounter(t *testing.T) {
	c := NewCounter()
	key := OccurrenceKey{PayerCode: "LIFE_SCIENCE", Beneficiary: "MARIO_PASTORE", Amount: "8.000,00"}
	other := OccurrenceKey{PayerCode: "LIFE_SCIENCE", Beneficiary: "MARIO_PASTORE", Amount: "9,00"}

	for i := 1; i <= 3; i++ {
		if got := c.Next(key); got != i {
			t.Fatalf("Next #%d = %d", i, got)
		}
	}
	if got := c.Next(other); got != 1 {
		t.Errorf("distinct key starts at %d, want 1", got)
	}
	c.Reset()
	if got := c.Next(key); got != 1 {
		t.Errorf("after Reset: %d, want 1", got)
	}
}

func TestSnippet(t *testing.T) {
	b := NewBuilder(config.Default())

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "barcode run",
			text: "CODIGO DE BARRAS\n12345678901234567890123456",
			want: "123456",
		},
		{
			name: "spaced linha digitavel",
			text: "Linha Digitável: 12345 67890 12345 67890 99887",
			want: "099887",
		},
		{
			name: "no hint",
			text: "12345678901234567890123456",
			want: "",
		},
		{
			name: "hint without digit run",
			text: "Linha Digitável indisponível",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Snippet(tt.text); got != tt.want {
				t.Errorf("Snippet() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	b := NewBuilder(config.Default())

	tests := []struct {
		name        string
		beneficiary string
		amount      string
		occurrence  int
		snippet     string
		want        string
	}{
		{
			name:        "first occurrence",
			beneficiary: "MARIO PASTORE",
			amount:      "8.000,00",
			occurrence:  1,
			want:        "MARIO_PASTORE - 8.000,00.pdf",
		},
		{
			name:        "second occurrence marked",
			beneficiary: "MARIO PASTORE",
			amount:      "8.000,00",
			occurrence:  2,
			want:        "N2 - MARIO_PASTORE - 8.000,00.pdf",
		},
		{
			name:        "snippet between stem and amount",
			beneficiary: "MARIO PASTORE",
			amount:      "150,00",
			occurrence:  1,
			snippet:     "123456",
			want:        "MARIO_PASTORE - 123456 - 150,00.pdf",
		},
		{
			name:        "marker with snippet",
			beneficiary: "MARIO PASTORE",
			amount:      "150,00",
			occurrence:  3,
			snippet:     "123456",
			want:        "N3 - MARIO_PASTORE - 123456 - 150,00.pdf",
		},
		{
			name:        "missing amount sentinel",
			beneficiary: "MARIO PASTORE",
			amount:      "",
			occurrence:  1,
			want:        "MARIO_PASTORE - " + constants.AmountNotFound + ".pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Filename(tt.beneficiary, tt.amount, tt.occurrence, tt.snippet)
			if got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollisionName(t *testing.T) {
	b := NewBuilder(config.Default())
	got := b.CollisionName("MARIO_PASTORE - 150,00.pdf", 2)
	if got != "MARIO_PASTORE - 150,00_2.pdf" {
		t.Errorf("CollisionName() = %q", got)
	}
}
