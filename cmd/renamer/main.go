package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"comprovantes-renamer/constants"
	"comprovantes-renamer/internal/archive"
	"comprovantes-renamer/internal/config"
	"comprovantes-renamer/internal/pdfio"
	"comprovantes-renamer/internal/pipeline"
	"comprovantes-renamer/internal/report"
)

func main() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	inputDir := getenv("INPUT_DIR", "entrada")
	outputDir := getenv("OUTPUT_DIR", "saida")
	tempDir := getenv("TEMP_DIR", "temp_parts")
	zipPath := getenv("ZIP_PATH", "comprovantes_renomeados.zip")
	csvPath := getenv("LOG_CSV", "renomeacao_log.csv")
	xlsxPath := getenv("REPORT_XLSX", "renomeacao_relatorio.xlsx")
	debugPath := getenv("DEBUG_LOG", "debug_extracao.txt")

	// Invalid configuration is the one fatal condition; everything after
	// this point degrades per page instead of aborting.
	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			logger.Error("invalid configuration", "error", err)
			os.Exit(1)
		}
		cfg = loaded
		logger.Info("config.loaded", "path", path, "payer_units", len(cfg.PayerUnits))
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		logger.Error("read input dir", "dir", inputDir, "error", err)
		os.Exit(1)
	}

	_ = os.RemoveAll(tempDir)

	// Split every source document into single-page parts. A document that
	// cannot be split is processed whole.
	var partPaths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := constants.NormalizeExt(filepath.Ext(name))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			continue
		}
		if strings.Contains(name, "_part") {
			continue
		}
		parts, err := pdfio.SplitPages(filepath.Join(inputDir, name), tempDir)
		if err != nil {
			logger.Warn("split failed, processing unsplit", "file", name, "error", err)
		}
		partPaths = append(partPaths, parts...)
	}
	sort.Strings(partPaths)
	logger.Info("input.ready", "documents", len(entries), "pages", len(partPaths))

	pages := make([]pipeline.Page, 0, len(partPaths))
	for _, p := range partPaths {
		pages = append(pages, pipeline.Page{Source: p, Text: pdfio.PageText(p)})
	}

	proc := pipeline.NewProcessor(logger, cfg)
	results := proc.Process(pages)

	// Place each page under its business-unit folder; suffix on collision
	// with a pre-existing file.
	placed := 0
	for _, r := range results {
		destDir := filepath.Join(outputDir, r.PayerCode)
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			logger.Warn("create output dir", "dir", destDir, "error", err)
			continue
		}
		dest := filepath.Join(destDir, r.Filename)
		for n := 1; exists(dest); n++ {
			dest = filepath.Join(destDir, proc.CollisionName(r.Filename, n))
		}
		if err := copyFile(r.Source, dest); err != nil {
			logger.Warn("place page", "source", r.Source, "error", err)
			continue
		}
		placed++
	}

	reports := report.NewService(logger)
	if err := reports.WriteCSV(csvPath, results); err != nil {
		logger.Warn("write csv", "error", err)
	}
	if err := reports.WriteXLSX(xlsxPath, proc.RunID(), results); err != nil {
		logger.Warn("write xlsx", "error", err)
	}
	if err := reports.WriteDebugLog(debugPath, proc.RunID(), results); err != nil {
		logger.Warn("write debug log", "error", err)
	}

	if err := archive.ZipDir(outputDir, zipPath); err != nil {
		logger.Warn("zip output", "error", err)
	}

	_ = os.RemoveAll(tempDir)

	logger.Info("run.done",
		"run_id", proc.RunID(),
		"pages", len(results),
		"placed", placed,
		"zip", zipPath,
		"csv", csvPath,
	)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
