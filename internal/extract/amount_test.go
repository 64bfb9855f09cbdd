package extract

import (
	"testing"

	"comprovantes-renamer/internal/config"
)

func TestParseBrazilianAmount(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"1.234,56", 1234.56, true},
		{"50,00", 50.00, true},
		{"8.000,00", 8000.00, true},
		{"0,00", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseBrazilianAmount(tt.in)
		if ok != tt.valid {
			t.Errorf("parseBrazilianAmount(%q) valid = %v, want %v", tt.in, ok, tt.valid)
			continue
		}
		if tt.valid && got != tt.want {
			t.Errorf("parseBrazilianAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtractAmount(t *testing.T) {
	e := NewExtractor(config.Default())

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "principal beats bare currency",
			text: "Valor principal: R$ 100,00 tarifa R$ 999,00",
			want: "100,00",
		},
		{
			name: "bare currency as last resort",
			text: "Pagamento efetuado R$ 50,00",
			want: "50,00",
		},
		{
			name: "thousands separator kept in display",
			text: "Valor principal: R$ 8.000,00",
			want: "8.000,00",
		},
		{
			name: "amount after tax id before zero fee",
			text: "50.894.589/0001-97 8.000,00 R$0,00",
			want: "8.000,00",
		},
		{
			name: "amount before zero fee without tax id",
			text: "email@exemplo.com 2.500,00 R$0,00",
			want: "2.500,00",
		},
		{
			name: "interest excluded",
			text: "R$ 10,00 Juros cobrados R$ 5,00",
			want: "5,00",
		},
		{
			name: "total pago",
			text: "Valor total pago: R$ 1.234,56",
			want: "1.234,56",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := e.ExtractAmount(tt.text, nil)
			if !f.Found {
				t.Fatalf("ExtractAmount(%q) not found, reason %q", tt.text, f.Reason)
			}
			if f.Value != tt.want {
				t.Errorf("ExtractAmount(%q) = %q, want %q", tt.text, f.Value, tt.want)
			}
		})
	}
}

func TestExtractAmountDedupKeepsMostSpecific(t *testing.T) {
	e := NewExtractor(config.Default())
	var diag Diagnostics
	f := e.ExtractAmount("Valor total: R$ 75,00 recibo R$ 75,00", &diag)
	if !f.Found || f.Value != "75,00" {
		t.Fatalf("got %+v", f)
	}
	if diag.AmountSelected != "total=75,00" {
		t.Errorf("selected = %q, want the priority-3 label", diag.AmountSelected)
	}
}

func TestExtractAmountMissing(t *testing.T) {
	e := NewExtractor(config.Default())

	if f := e.ExtractAmount("", nil); f.Found || f.Reason != ReasonEmptyText {
		t.Errorf("empty text: got %+v", f)
	}
	if f := e.ExtractAmount("comprovante sem numeros", nil); f.Found || f.Reason != ReasonNoMatch {
		t.Errorf("no match: got %+v", f)
	}
}
