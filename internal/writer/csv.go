// Package writer renders the analysis envelope to CSV for spreadsheet use.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/statement-insights/internal/models"
)

// CSVWriter writes the transaction ledger in CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the ledger to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, result *models.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, result)
}

// Write writes the ledger in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, result *models.AnalysisResult) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		ins := result.Insights
		if ins != nil {
			writer.Write([]string{"# Transactions", strconv.Itoa(ins.Count)})
			writer.Write([]string{"# Total Debits", ins.TotalDebits.StringFixed(2)})
			writer.Write([]string{"# Total Credits", ins.TotalCredits.StringFixed(2)})
			writer.Write([]string{"# Net Flow", ins.NetFlow.StringFixed(2)})
		}
		if result.Meta.Note != "" {
			writer.Write([]string{"# Note", result.Meta.Note})
		}
	}

	header := []string{"Date", "Description", "Category", "DR/CR", "Amount", "Currency", "Confidence", "Parser"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range result.Transactions {
		row := []string{
			txn.Date,
			txn.Description,
			txn.Category,
			string(txn.DRCR),
			txn.Amount.StringFixed(2),
			txn.Currency,
			strconv.FormatFloat(txn.Confidence, 'f', 2, 64),
			txn.SourceParser,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}
