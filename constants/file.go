package constants

import "strings"

// Sentinel outputs. Stored verbatim in filenames and report rows, so these
// exact strings are part of the observable contract.
const (
	UnknownBeneficiary = "FORNECEDOR_DESCONHECIDO"
	AmountNotFound     = "VALOR_NAO_ENCONTRADO"
	PayerOther         = "OUTROS"
)

// Filename grammar defaults.
const (
	MaxNameLen      = 60
	BarcodeTailLen  = 6
	DuplicateMarker = "N"
	OutputExtension = ".pdf"
)

// AllowedExtensions holds the file extensions eligible for processing.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
