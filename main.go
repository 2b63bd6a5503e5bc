package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-insights/internal/analyzer"
	"github.com/insightdelivered/statement-insights/internal/api"
	"github.com/insightdelivered/statement-insights/internal/config"
	"github.com/insightdelivered/statement-insights/internal/extractor"
	"github.com/insightdelivered/statement-insights/internal/logger"
	"github.com/insightdelivered/statement-insights/internal/writer"
)

const version = "1.0.0"

func main() {
	configFlag := flag.String("config", "config.yaml", "Path to YAML config file (optional)")
	currencyFlag := flag.String("currency", "", "Statement currency code (default from config, INR)")
	outputFlag := flag.String("output", "", "Output CSV path (defaults to input filename with .csv extension)")
	jsonFlag := flag.Bool("json", false, "Write the full analysis envelope as JSON instead of CSV")
	headerFlag := flag.Bool("header", true, "Include summary header rows in CSV output")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Statement Insights
by Insight Delivered

Parses bank statement text (or the text layer of statement PDFs) into a
signed transaction ledger with categories, recurring-subscription groups
and unusual-spend flags.

Usage:
  statement-insights [flags] <statement.txt|statement.pdf> [more files ...]
  statement-insights --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Analyze an extracted statement text file
  statement-insights statement.txt

  # Analyze a PDF's text layer and write the envelope as JSON
  statement-insights --json statement.pdf

  # Run the HTTP API
  statement-insights --serve
`)
	}

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-insights v%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *currencyFlag != "" {
		cfg.Currency = strings.ToUpper(*currencyFlag)
	}
	cfg.CSVHeader = *headerFlag

	log := logger.New(cfg.LogLevel)

	if *serveFlag {
		serve(cfg, log)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, cfg, *outputFlag, *jsonFlag, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func serve(cfg config.Config, log zerolog.Logger) {
	app := api.New(cfg, log)
	log.Info().Str("addr", cfg.ListenAddr).Msg("starting statement-insights API")
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func processFile(inputPath string, cfg config.Config, outputPath string, asJSON bool, log zerolog.Logger) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	opts := analyzer.Options{Currency: cfg.Currency}
	var text string

	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".pdf":
		doc, err := extractor.ExtractPDF(inputPath)
		if err != nil {
			if doc != nil && doc.LooksScanned {
				return fmt.Errorf("%s appears to be a scanned PDF; run OCR and pass the text file instead", inputPath)
			}
			return err
		}
		text = doc.Text
		opts.PageCount = doc.PageCount
		opts.LooksScanned = doc.LooksScanned
		log.Info().Str("file", inputPath).Int("pages", doc.PageCount).Msg("extracted PDF text layer")
	case ".txt", ".text":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", inputPath, err)
		}
		text = string(data)
	default:
		return fmt.Errorf("expected a .pdf or .txt file, got %q", filepath.Ext(inputPath))
	}

	result := analyzer.Analyze(text, opts)

	log.Info().
		Str("file", inputPath).
		Str("runId", result.Meta.RunID).
		Int("transactions", len(result.Transactions)).
		Msg("analysis complete")
	if result.Meta.Note != "" {
		log.Warn().Str("file", inputPath).Msg(result.Meta.Note)
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		if asJSON {
			outPath = base + ".json"
		} else {
			outPath = base + ".csv"
		}
	}

	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode envelope: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	} else {
		w := &writer.CSVWriter{IncludeHeader: cfg.CSVHeader}
		if err := w.WriteToFile(outPath, result); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	}

	fmt.Printf("%s -> %s (%d transactions)\n", inputPath, outPath, len(result.Transactions))
	return nil
}
