// Package report writes the per-run artifacts: the semicolon-separated
// rename log, an XLSX workbook for review, and a plain-text debug dump of
// extraction evidence. These files are the only thing a run persists.
package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"comprovantes-renamer/internal/pipeline"
)

var csvHeader = []string{"source", "empresa", "beneficiario", "valor", "nome_final"}

// Service writes run reports. Stateless apart from the logger.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteCSV writes the rename log, one row per processed page, ";" separated.
func (s *Service) WriteCSV(path string, results []pipeline.PageResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range results {
		row := []string{filepath.Base(r.Source), r.PayerCode, r.Beneficiary, r.Amount, r.Filename}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	s.logger.Info("report.csv", "path", path, "rows", len(results))
	return nil
}

// WriteXLSX writes the review workbook: one sheet, header row, one row per
// page result.
func (s *Service) WriteXLSX(path string, runID uuid.UUID, results []pipeline.PageResult) error {
	f := excelize.NewFile()
	const sheet = "Comprovantes"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Source Page", "Business Unit", "Beneficiary", "Amount", "Occurrence", "Output Name", "Detector", "Score"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, filepath.Base(r.Source))
		write(2, r.PayerCode)
		write(3, r.Beneficiary)
		write(4, r.Amount)
		write(5, r.Occurrence)
		write(6, r.Filename)
		write(7, r.Diag.Method)
		write(8, r.Diag.Score)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "C", "C", 40)
	_ = f.SetColWidth(sheet, "F", "F", 48)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	s.logger.Info("report.xlsx", "path", path, "rows", len(results), "run_id", runID)
	return nil
}

// WriteDebugLog dumps extraction evidence per page for manual triage.
func (s *Service) WriteDebugLog(path string, runID uuid.UUID, results []pipeline.PageResult) error {
	var sb strings.Builder
	sb.WriteString("run_id: " + runID.String() + "\n")
	for _, r := range results {
		sb.WriteString("\n" + strings.Repeat("=", 60) + "\n")
		sb.WriteString("source: " + r.Source + "\n")
		sb.WriteString("doc_type: " + r.Diag.DocType + "\n")
		sb.WriteString("method: " + r.Diag.Method + "\n")
		fmt.Fprintf(&sb, "score: %d\n", r.Diag.Score)
		fmt.Fprintf(&sb, "candidates: %d\n", r.Diag.CandidateCount)
		sb.WriteString("beneficiary: " + r.Beneficiary + "\n")
		if len(r.Diag.AmountMatches) > 0 {
			sb.WriteString("amount_matches: " + strings.Join(r.Diag.AmountMatches, ", ") + "\n")
		}
		sb.WriteString("amount_selected: " + r.Diag.AmountSelected + "\n")
		sb.WriteString("payer: " + r.PayerCode + "\n")
		sb.WriteString("filename: " + r.Filename + "\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write debug log: %w", err)
	}
	s.logger.Info("report.debug", "path", path, "rows", len(results))
	return nil
}
