// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections turns per-page document text into an ordered sequence
// of labeled sections using heading-pattern heuristics. A page with no
// detected heading continues the previous section; extraction never drops
// non-empty text.
package sections

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/docsight/pkg/types"
)

// maxHeadingLen bounds heading candidates. Longer lines are body text no
// matter what pattern they match.
const maxHeadingLen = 100

var (
	numberedRe = regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s+\S`)
	chapterRe  = regexp.MustCompile(`(?i)^(chapter|part|section|appendix)\s+[0-9ivxlc]+\b`)
	keywordRe  = regexp.MustCompile(`(?i)^(introduction|conclusion|summary|overview|background|abstract|references|acknowledg)`)
	capsRe     = regexp.MustCompile(`^[A-Z][A-Z0-9 \-:&,'./]*$`)
)

// stopwords is the small function-word set used by the implicit-heading
// heuristic. Lines dominated by these read as prose, not titles.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "in": true, "is": true, "it": true,
	"its": true, "of": true, "on": true, "or": true, "that": true,
	"the": true, "this": true, "to": true, "was": true, "were": true,
	"will": true, "with": true,
}

// Classify reports which heading heuristic matches the line, if any.
// Patterns are tried in priority order: numbered, chapter keyword,
// all-caps, implicit.
func Classify(line string) (types.HeadingKind, bool) {
	line = strings.TrimSpace(line)
	if len(line) < 3 || len(line) > maxHeadingLen {
		return "", false
	}

	switch {
	case numberedRe.MatchString(line):
		return types.HeadingNumbered, true
	case chapterRe.MatchString(line) || keywordRe.MatchString(line):
		return types.HeadingChapter, true
	case capsRe.MatchString(line) && hasLetter(line) && wordCount(line) <= 8:
		return types.HeadingCaps, true
	case looksLikeHeading(line):
		return types.HeadingImplicit, true
	}
	return "", false
}

// looksLikeHeading is the fallback heuristic: a short title-like line
// with mostly capitalized words, few stopwords, and no trailing period.
func looksLikeHeading(line string) bool {
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") {
		return false
	}

	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 8 {
		return false
	}

	var stops, capitalized int
	for _, w := range words {
		if stopwords[strings.ToLower(strings.Trim(w, ",.:;"))] {
			stops++
		}
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			capitalized++
		}
	}
	if float64(stops)/float64(len(words)) > 0.5 {
		return false
	}
	return float64(capitalized) >= float64(len(words))*0.6
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// Extract scans a document's pages line by line and produces its sections
// in reading order. Pages with empty text yield no sections. Content that
// appears before any detected heading becomes a single implicit section
// titled from its first non-empty line.
func Extract(doc types.Document) []types.Section {
	var (
		secs    []types.Section
		current *types.Section
		body    []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		current.StructuralWeight = Weight(current.Kind, len(current.Body))
		secs = append(secs, *current)
		current = nil
		body = nil
	}

	for _, page := range doc.Pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}

		for _, raw := range strings.Split(page.Text, "\n") {
			line := strings.TrimSpace(raw)

			if line == "" {
				// Preserve paragraph breaks for the chunking stage.
				if len(body) > 0 && body[len(body)-1] != "" {
					body = append(body, "")
				}
				continue
			}

			if kind, ok := Classify(line); ok {
				flush()
				current = &types.Section{
					Document: doc.ID,
					Page:     page.Number,
					Title:    clean(line),
					Kind:     kind,
				}
				continue
			}

			if current == nil {
				// First content without a heading: implicit section
				// titled from this line.
				current = &types.Section{
					Document: doc.ID,
					Page:     page.Number,
					Title:    clean(line),
					Kind:     types.HeadingImplicit,
				}
				continue
			}

			body = append(body, line)
		}
	}
	flush()

	return secs
}

// ExtractAll runs Extract over every document and concatenates the
// results in input order. The ranking stage needs all sections collected
// before scoring, since ranks are global across documents.
func ExtractAll(docs []types.Document) []types.Section {
	var all []types.Section
	for _, doc := range docs {
		all = append(all, Extract(doc)...)
	}
	return all
}

// clean collapses internal whitespace runs in a heading line.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
