// Package pdfio handles the PDF edges of the pipeline: splitting multi-page
// source documents into single-page units and pulling the embedded text
// layer out of each page. Scanned images are not OCRed; a page without a
// text layer simply yields empty text.
package pdfio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// SplitPages writes one single-page PDF per page of inPath into outDir and
// returns the new paths in page order. If splitting fails the original file
// is returned unsplit so processing degrades instead of aborting.
func SplitPages(inPath, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create split dir: %w", err)
	}
	if err := api.SplitFile(inPath, outDir, 1, nil); err != nil {
		return []string{inPath}, fmt.Errorf("split %s: %w", filepath.Base(inPath), err)
	}

	stem := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	parts, err := filepath.Glob(filepath.Join(outDir, stem+"_*.pdf"))
	if err != nil || len(parts) == 0 {
		return []string{inPath}, fmt.Errorf("no split output for %s", filepath.Base(inPath))
	}
	sort.Slice(parts, func(i, j int) bool {
		return pageOrdinal(parts[i]) < pageOrdinal(parts[j])
	})
	return parts, nil
}

// pageOrdinal reads the trailing page number from a split part name
// ("doc_12.pdf" -> 12) so parts sort numerically, not lexically.
func pageOrdinal(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	idx := strings.LastIndex(base, "_")
	if idx < 0 {
		return 0
	}
	n := 0
	for _, r := range base[idx+1:] {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// PageText extracts the concatenated text layer of every page in the file.
// Extraction failures produce empty text, never an error that would halt the
// run; downstream extractors emit sentinel results for empty input.
func PageText(path string) string {
	f, r, err := pdf.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		if t, err := p.GetPlainText(nil); err == nil && t != "" {
			sb.WriteString(t)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
