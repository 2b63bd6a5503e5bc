// Package extractor turns a statement PDF's text layer into the single
// normalized text blob the analysis core consumes. It is a collaborator at
// the edge of the pipeline: the core itself never sees a PDF, only the blob
// plus page-count and looks-scanned metadata. Image-only documents are
// reported, never fed downstream as garbage.
package extractor

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is the extraction output: one order-preserving text blob plus
// the metadata the analysis envelope passes through.
type Document struct {
	Text         string
	PageCount    int
	LooksScanned bool
}

// ExtractPDF reads a statement PDF and returns its text layer. When the
// document opens but yields no readable text it is flagged as scanned.
func ExtractPDF(filePath string) (*Document, error) {
	pages, numPages, err := extractPages(filePath)
	if err != nil {
		return nil, fmt.Errorf("pdf text extraction: %w", err)
	}

	if !isReadableText(pages) {
		return &Document{PageCount: numPages, LooksScanned: true},
			fmt.Errorf("no readable text layer in PDF; the document appears to be scanned or image-based")
	}

	return &Document{
		Text:      strings.Join(pages, "\n"),
		PageCount: numPages,
	}, nil
}

// extractPages tries row-based extraction first, then coordinate-based row
// reconstruction for PDFs whose text objects are unordered.
func extractPages(filePath string) (pages []string, numPages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, 0, openErr
	}
	defer f.Close()

	numPages = r.NumPage()
	if numPages == 0 {
		return nil, 0, fmt.Errorf("PDF has no pages")
	}

	pages = extractByRow(r, numPages)
	if isReadableText(pages) {
		return pages, numPages, nil
	}

	pages = extractByContent(r, numPages)
	return pages, numPages, nil
}

// extractByRow uses the library's row grouping; best layout preservation
// for well-structured PDFs.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByContent reconstructs rows from raw text-object coordinates:
// group by Y, sort rows top-to-bottom, items left-to-right.
func extractByContent(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type textItem struct {
			x float64
			s string
		}
		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		// PDF Y runs bottom-to-top
		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

			var parts []string
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					// Large gap between objects marks a column boundary.
					parts = append(parts, " ")
				}
				parts = append(parts, item.s)
				prevX = item.x
			}
			line := strings.TrimSpace(strings.Join(parts, ""))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}
