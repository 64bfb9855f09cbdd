package config

import (
	"encoding/json"
	"fmt"
	"os"

	"comprovantes-renamer/constants"
)

// PayerUnit maps a business-unit code to the alias substrings that identify
// it in receipt text. Units are matched in declaration order, first hit wins,
// so the table is a slice rather than a map.
type PayerUnit struct {
	Code    string   `json:"code"`
	Aliases []string `json:"aliases"`
}

// Config is the immutable per-run configuration consumed by every component.
// Loaded once at startup; a schema violation there is the only fatal error in
// the program.
type Config struct {
	// PayerUnits buckets each receipt under a business-unit code.
	PayerUnits []PayerUnit `json:"payer_units"`

	// PayerTaxIDs are the paying companies' CNPJ/CPF strings. They anchor the
	// detector that reads the recipient name between the payer's tax ID and
	// the recipient's own.
	PayerTaxIDs []string `json:"payer_tax_ids,omitempty"`

	// RejectEntities are in-house names a candidate must never contain;
	// prevents labeling the payer itself as the beneficiary.
	RejectEntities []string `json:"reject_entities"`

	// JargonTokens reject banking field labels posing as names ("agencia",
	// "conta", ...). A candidate equal to a token, or starting with one plus
	// a space, is discarded.
	JargonTokens []string `json:"jargon_tokens"`

	// NameAliases canonicalizes known truncated payee names as printed by
	// some banks, e.g. "PREF SP DAMSP" -> the full city-hall name.
	NameAliases map[string]string `json:"name_aliases,omitempty"`

	MinNameLen      int    `json:"min_name_len"`
	StrictNameLen   int    `json:"strict_name_len"`
	MaxFilenameLen  int    `json:"max_filename_len"`
	BarcodeTailLen  int    `json:"barcode_tail_len"`
	DuplicateMarker string `json:"duplicate_marker"`
	OutputExtension string `json:"output_extension"`
}

// Default returns the compiled-in configuration mirroring the reference
// deployment. Used when no config file is supplied.
func Default() *Config {
	return &Config{
		PayerUnits: []PayerUnit{
			{Code: "LIFE_SCIENCE", Aliases: []string{"FARMAUSA LIFE SCIENCE", "LIFE SCIENCE"}},
			{Code: "URBANBOX", Aliases: []string{"URBANBOX"}},
			{Code: "PHARMACEUTICAL", Aliases: []string{"FARMAUSA PHARMACEUTICAL", "FARMAUSA PHARMACEUTICAL LTDA"}},
		},
		PayerTaxIDs:    []string{"37.124.240/0001-08"},
		RejectEntities: []string{"FARMAUSA", "URBANBOX", "PHARMACEUTICAL", "LIFE SCIENCE", "SICOOB"},
		JargonTokens: []string{
			"agencia", "conta", "cpf", "cnpj", "chave", "instituicao",
			"banco", "dados", "transferencia", "pagamento", "valor",
			"documento", "autenticacao", "controle", "debito", "origem",
			"destino", "corrente", "codigo", "barras", "linha", "digitavel",
		},
		NameAliases: map[string]string{
			"DALL PHYT OLAB S A":                      "DALL PHYTO LAB S.A.",
			"PREF SP DAMSP":                           "PREFEITURA MUNICIPAL DE SAO PAULO",
			"PRO AN QUIM E DIAGNOSTICA LTDA":          "PRO AN QUIMICA E DIAGNOSTICA LTDA",
			"SUPER EPI EQUIPAM E PROTECAO INDIVIDUAL": "SUPER EPI EQUIPAMENTOS E PROTECAO INDIVIDUAL",
			"ANHANGUERA COM DE FERR LTDA":             "ANHANGUERA COM DE FERRO LTDA",
			"KALUNGA SA":                              "KALUNGA S.A.",
		},
		MinNameLen:      5,
		StrictNameLen:   8,
		MaxFilenameLen:  constants.MaxNameLen,
		BarcodeTailLen:  constants.BarcodeTailLen,
		DuplicateMarker: constants.DuplicateMarker,
		OutputExtension: constants.OutputExtension,
	}
}

// Load reads and validates a JSON config file. Fields left at their zero
// value fall back to the defaults above, so a file only needs to state what
// it changes.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := ValidateConfigJSON(raw); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg := Default()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.MinNameLen <= 0 {
		c.MinNameLen = d.MinNameLen
	}
	if c.StrictNameLen <= 0 {
		c.StrictNameLen = d.StrictNameLen
	}
	if c.MaxFilenameLen <= 0 {
		c.MaxFilenameLen = d.MaxFilenameLen
	}
	if c.BarcodeTailLen <= 0 {
		c.BarcodeTailLen = d.BarcodeTailLen
	}
	if c.DuplicateMarker == "" {
		c.DuplicateMarker = d.DuplicateMarker
	}
	if c.OutputExtension == "" {
		c.OutputExtension = d.OutputExtension
	}
}

// check enforces the invariants the schema cannot express across fields.
func (c *Config) check() error {
	if len(c.PayerUnits) == 0 {
		return fmt.Errorf("payer_units must not be empty")
	}
	seen := make(map[string]struct{}, len(c.PayerUnits))
	for _, u := range c.PayerUnits {
		if u.Code == "" || len(u.Aliases) == 0 {
			return fmt.Errorf("payer unit %q needs a code and at least one alias", u.Code)
		}
		if _, dup := seen[u.Code]; dup {
			return fmt.Errorf("duplicate payer unit code %q", u.Code)
		}
		seen[u.Code] = struct{}{}
	}
	if len(c.JargonTokens) == 0 {
		return fmt.Errorf("jargon_tokens must not be empty")
	}
	if c.StrictNameLen < c.MinNameLen {
		return fmt.Errorf("strict_name_len (%d) below min_name_len (%d)", c.StrictNameLen, c.MinNameLen)
	}
	return nil
}
