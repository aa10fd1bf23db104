// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the docsight pipeline.
// Every entity is created once per run and never mutated afterwards; the
// stages communicate through these value objects only.
package types

// Page holds the raw text extracted from one PDF page. Text may be empty
// when extraction failed for that page; the extractor emits the page
// anyway so page numbering stays 1-based and gapless.
type Page struct {
	// Number is the 1-based page number within the document.
	Number int `json:"number" yaml:"number"`

	// Text is the raw extracted text, line-structured where the source
	// allows it. Empty on extraction failure.
	Text string `json:"text" yaml:"text"`
}

// Document is one input PDF: an identifier plus its pages in order.
type Document struct {
	// ID is the document identifier, normally the PDF filename.
	ID string `json:"id" yaml:"id"`

	// Pages holds the per-page extracted text in page order.
	Pages []Page `json:"pages" yaml:"pages"`
}

// HeadingKind categorizes how a section heading was detected. The kinds
// form a strict importance order: numbered > chapter > caps > implicit.
type HeadingKind string

const (
	// HeadingNumbered matches decimal-numbered headings like "3.2 Options".
	HeadingNumbered HeadingKind = "numbered"

	// HeadingChapter matches chapter/major-title keyword headings
	// ("Chapter 4", "Introduction", "Appendix B").
	HeadingChapter HeadingKind = "chapter"

	// HeadingCaps matches short ALL-CAPS lines.
	HeadingCaps HeadingKind = "caps"

	// HeadingImplicit is the fallback for short title-like lines that
	// precede longer body text.
	HeadingImplicit HeadingKind = "implicit"
)

// Section is a heading plus its associated body text within one document.
type Section struct {
	// Document is the originating document ID.
	Document string `json:"document" yaml:"document"`

	// Page is the 1-based page number where the heading was found.
	Page int `json:"page" yaml:"page"`

	// Title is the cleaned heading text.
	Title string `json:"title" yaml:"title"`

	// Body is the section content up to the next detected heading.
	// Paragraph breaks are preserved as blank lines where the source
	// text carries them.
	Body string `json:"body" yaml:"body"`

	// Kind records which heading heuristic matched.
	Kind HeadingKind `json:"kind" yaml:"kind"`

	// StructuralWeight is the heading-derived importance in [0,1]:
	// kind base adjusted by body length, computed once at extraction.
	StructuralWeight float64 `json:"structural_weight" yaml:"structural_weight"`
}
