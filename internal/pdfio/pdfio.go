// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfio extracts per-page text from PDF files. The pipeline
// treats it as a black-box collaborator behind the PageExtractor
// interface so tests can substitute canned page text.
package pdfio

import (
	"fmt"
	"strings"
	"unicode"

	pdflib "github.com/ledongthuc/pdf"
)

// PageExtractor yields the ordered per-page raw text of one document.
// A page that cannot be read produces an empty string at its position
// rather than failing the call; an error means the whole file is
// unreadable.
type PageExtractor interface {
	ExtractPages(path string) ([]string, error)
}

// Reader extracts text with the pure-Go PDF library.
type Reader struct{}

// NewReader returns a PDF page extractor.
func NewReader() *Reader { return &Reader{} }

// ExtractPages opens the PDF at path and returns one text string per
// page, preserving line structure where the page layout allows it.
func (r *Reader) ExtractPages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, extractPage(page))
	}
	return pages, nil
}

// extractPage pulls text from one page, row-ordered so that heading
// detection sees real lines. Falls back to the flat text stream when row
// extraction fails, and to empty text when both fail.
func extractPage(page pdflib.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var b strings.Builder
		for _, row := range rows {
			var words []string
			for _, word := range row.Content {
				if w := strings.TrimSpace(word.S); w != "" {
					words = append(words, w)
				}
			}
			if len(words) > 0 {
				b.WriteString(strings.Join(words, " "))
				b.WriteString("\n")
			}
		}
		return Clean(b.String())
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return Clean(text)
}

// Clean normalizes extracted page text: control runes (except newline)
// become spaces, space runs collapse, and line structure is preserved.
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case unicode.IsControl(r) || r == '�':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
