// Package api exposes the analysis pipeline over HTTP. Transport framing
// lives here only; the core never sees a request.
package api

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-insights/internal/analyzer"
	"github.com/insightdelivered/statement-insights/internal/config"
	"github.com/insightdelivered/statement-insights/internal/extractor"
	"github.com/insightdelivered/statement-insights/internal/models"
)

const version = "1.0.0"

// AnalyzeResponse wraps the analysis envelope for the JSON API.
type AnalyzeResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Insights     *models.Insights     `json:"insights,omitempty"`
	Meta         models.Meta          `json:"meta"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Cfg config.Config
	Log zerolog.Logger
}

// Register sets up the routes on the given app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/analyze", h.HandleAnalyze)
}

// New builds a ready-to-listen fiber app.
func New(cfg config.Config, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // statement uploads are small; 32MB is generous
	})
	h := &Handler{Cfg: cfg, Log: log}
	h.Register(app)
	return app
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

// HandleAnalyze accepts either a pre-extracted text blob (form field
// "text") or a PDF upload (form file "file") and returns the analysis
// envelope. An unrecognized statement is a 200 with an empty result and a
// note, not an error.
func (h *Handler) HandleAnalyze(c *fiber.Ctx) error {
	opts := analyzer.Options{Currency: h.Cfg.Currency}
	if cur := c.FormValue("currency"); cur != "" {
		opts.Currency = strings.ToUpper(cur)
	}

	text := c.FormValue("text")

	if text == "" {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "no statement provided; send form field 'text' or upload 'file'")
		}

		name := strings.ToLower(fileHeader.Filename)
		if !strings.HasSuffix(name, ".pdf") && !strings.HasSuffix(name, ".txt") {
			return writeError(c, fiber.StatusBadRequest, "only .pdf and .txt uploads are supported")
		}

		tmp, err := os.CreateTemp("", "statement-*"+name[strings.LastIndex(name, "."):])
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to stage upload")
		}
		defer os.Remove(tmp.Name())
		tmp.Close()

		if err := c.SaveFile(fileHeader, tmp.Name()); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to save upload")
		}

		if strings.HasSuffix(name, ".pdf") {
			doc, err := extractor.ExtractPDF(tmp.Name())
			if err != nil {
				h.Log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("pdf extraction failed")
				status := fiber.StatusUnprocessableEntity
				if doc != nil && doc.LooksScanned {
					return writeError(c, status, "the PDF appears to be scanned; OCR it first and submit the text")
				}
				return writeError(c, status, fmt.Sprintf("PDF extraction failed: %v", err))
			}
			text = doc.Text
			opts.PageCount = doc.PageCount
			opts.LooksScanned = doc.LooksScanned
		} else {
			data, err := os.ReadFile(tmp.Name())
			if err != nil {
				return writeError(c, fiber.StatusInternalServerError, "failed to read upload")
			}
			text = string(data)
		}
	}

	result := analyzer.Analyze(text, opts)

	h.Log.Info().
		Str("runId", result.Meta.RunID).
		Int("transactions", len(result.Transactions)).
		Msg("analysis complete")

	return c.JSON(AnalyzeResponse{
		Success:      true,
		Transactions: result.Transactions,
		Insights:     result.Insights,
		Meta:         result.Meta,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(AnalyzeResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
