// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one analysis job end to end: extract sections
// from the input PDFs, rank them against the persona/task profile, chunk
// the top sections, rank the chunks, and assemble the output document.
// Each stage consumes the previous stage's result immutably; the only
// synchronization point is that ranking needs all sections collected
// first, since ranks are global across documents.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/docsight/internal/chunk"
	"github.com/pdiddy/docsight/internal/embed"
	"github.com/pdiddy/docsight/internal/pdfio"
	"github.com/pdiddy/docsight/internal/persona"
	"github.com/pdiddy/docsight/internal/rank"
	"github.com/pdiddy/docsight/internal/sections"
	"github.com/pdiddy/docsight/pkg/types"
)

// pdfSubdir is the directory next to the job file where PDFs live.
const pdfSubdir = "PDFs"

// maxRefinedChars caps chunk text in the output document.
const maxRefinedChars = 500

// Options wires the pipeline's collaborators. Extractor and Embedder are
// required; Lexicon and Now default sensibly when nil.
type Options struct {
	Extractor pdfio.PageExtractor
	Embedder  embed.Embedder

	// Lexicon supplies persona keyword sets. Nil uses the built-ins.
	Lexicon *persona.Lexicon

	// Now supplies the metadata timestamp. Nil uses time.Now. Tests
	// inject a fixed clock so identical inputs yield identical bytes.
	Now func() time.Time
}

// Run executes one analysis job. baseDir is the directory containing the
// job file; document paths resolve under baseDir/PDFs/ with a fallback to
// baseDir itself. Progress and warnings go to w. Run fails only when the
// job is invalid or no document yields any readable content; every lesser
// failure is recovered by skipping the page or document.
func Run(ctx context.Context, job types.Job, baseDir string, opts Options, w io.Writer) (*types.Result, error) {
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job: %w", err)
	}
	if opts.Extractor == nil || opts.Embedder == nil {
		return nil, fmt.Errorf("pipeline requires an extractor and an embedder")
	}

	lex := opts.Lexicon
	if lex == nil {
		lex = persona.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	profile := lex.Resolve(job.Persona.Role, job.JobToBeDo.Task)
	fmt.Fprintf(w, "persona: %s (%s), task: %s\n", profile.Role, profile.Key, profile.Task)

	docs, processed := loadDocuments(job, baseDir, opts.Extractor, w)
	if processed == 0 {
		return nil, fmt.Errorf("no documents could be processed")
	}

	secs := sections.ExtractAll(docs)
	fmt.Fprintf(w, "extracted %d sections from %d document(s)\n", len(secs), processed)

	result := &types.Result{
		Metadata: types.Metadata{
			InputDocuments:      documentNames(job),
			Persona:             job.Persona.Role,
			JobToBeDone:         job.JobToBeDo.Task,
			ProcessingTimestamp: now().UTC().Format(time.RFC3339),
			SectionsExtracted:   len(secs),
		},
		ExtractedSections:  []types.SectionEntry{},
		SubsectionAnalysis: []types.ChunkEntry{},
	}

	// Readable documents with zero sections still produce a valid,
	// empty output rather than an error.
	if len(secs) == 0 {
		return result, nil
	}

	ranked, err := rank.ScoreSections(ctx, opts.Embedder, profile, secs)
	if err != nil {
		return nil, fmt.Errorf("scoring sections: %w", err)
	}

	top := ranked
	if len(top) > types.TopSections {
		top = top[:types.TopSections]
	}

	// The chunking pool is exactly the emitted top sections, so every
	// output chunk's parent appears in the output section list.
	scoredChunks, err := rank.ScoreChunks(ctx, opts.Embedder, profile, candidates(top))
	if err != nil {
		return nil, fmt.Errorf("scoring subsections: %w", err)
	}
	result.Metadata.SubsectionsGenerated = len(scoredChunks)

	topChunks := scoredChunks
	if len(topChunks) > types.TopChunks {
		topChunks = topChunks[:types.TopChunks]
	}

	for _, s := range top {
		result.ExtractedSections = append(result.ExtractedSections, types.SectionEntry{
			Document:       s.Document,
			SectionTitle:   s.Title,
			PageNumber:     s.Page,
			ImportanceRank: s.Rank,
			RelevanceScore: round(s.Scores.Composite),
		})
	}
	for _, c := range topChunks {
		result.SubsectionAnalysis = append(result.SubsectionAnalysis, types.ChunkEntry{
			Document:       c.Document,
			SectionTitle:   c.SectionTitle,
			RefinedText:    truncateRefined(c.Text),
			PageNumber:     c.Page,
			Rank:           c.Rank,
			RelevanceScore: round(c.Scores.Composite),
		})
	}

	return result, nil
}

// loadDocuments extracts page text for every job document, skipping
// missing or unreadable files with a warning. It returns the extracted
// documents and the count of documents that were readable at all.
func loadDocuments(job types.Job, baseDir string, ex pdfio.PageExtractor, w io.Writer) ([]types.Document, int) {
	var docs []types.Document
	processed := 0

	for _, jd := range job.Documents {
		path, err := resolvePDF(baseDir, jd.Filename)
		if err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
			continue
		}

		pages, err := ex.ExtractPages(path)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping %s: %v\n", jd.Filename, err)
			continue
		}
		processed++

		doc := types.Document{ID: jd.Filename}
		for i, text := range pages {
			doc.Pages = append(doc.Pages, types.Page{Number: i + 1, Text: text})
		}
		docs = append(docs, doc)
	}
	return docs, processed
}

// resolvePDF locates a job document under baseDir/PDFs/, falling back to
// baseDir itself.
func resolvePDF(baseDir, filename string) (string, error) {
	primary := filepath.Join(baseDir, pdfSubdir, filename)
	if _, err := os.Stat(primary); err == nil {
		return primary, nil
	}
	fallback := filepath.Join(baseDir, filename)
	if _, err := os.Stat(fallback); err == nil {
		return fallback, nil
	}
	return "", fmt.Errorf("document not found: %s (looked in %s and %s)", filename, primary, fallback)
}

// candidates chunks the top sections' bodies into scoring candidates,
// each inheriting its parent's identity and structural weight.
func candidates(top []types.ScoredSection) []rank.ChunkCandidate {
	var cands []rank.ChunkCandidate
	for _, s := range top {
		for _, text := range chunk.Split(s.Body) {
			cands = append(cands, rank.ChunkCandidate{
				Chunk: types.Chunk{
					Document:     s.Document,
					SectionTitle: s.Title,
					Page:         s.Page,
					Text:         text,
				},
				Structural: s.StructuralWeight,
			})
		}
	}
	return cands
}

func documentNames(job types.Job) []string {
	names := make([]string, len(job.Documents))
	for i, d := range job.Documents {
		names[i] = d.Filename
	}
	return names
}

func truncateRefined(text string) string {
	if len(text) <= maxRefinedChars {
		return text
	}
	cut := maxRefinedChars - 3
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// round keeps output scores at four decimal places so result files stay
// stable and readable.
func round(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// LoadJob reads and validates the input job descriptor.
func LoadJob(path string) (types.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Job{}, fmt.Errorf("reading job file: %w", err)
	}

	var job types.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return types.Job{}, fmt.Errorf("parsing job file %s: %w", path, err)
	}
	if err := job.Validate(); err != nil {
		return types.Job{}, fmt.Errorf("job file %s: %w", path, err)
	}
	return job, nil
}

// WriteResult serializes the result as indented JSON to path.
func WriteResult(path string, result *types.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result to %s: %w", path, err)
	}
	return nil
}
