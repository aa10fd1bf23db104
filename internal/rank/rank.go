// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores sections and chunks against a persona/task profile
// and produces the global ranking. Three signals feed a fixed-weight
// composite: semantic similarity to the enhanced query, keyword overlap
// with the persona/task keyword set, and structural importance of the
// heading. Ranking is deterministic for identical input.
package rank

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/docsight/internal/embed"
	"github.com/pdiddy/docsight/internal/persona"
	"github.com/pdiddy/docsight/pkg/types"
)

// sectionTextCap bounds the heading+body text sent to the embedding
// backend. Longer bodies add latency without adding signal.
const sectionTextCap = 2000

// ScoreSections computes the three relevance signals for every section and
// returns the full ranking across all input documents. Sections with empty
// bodies skip the embedding call: their semantic and keyword scores are
// zero and they rank on structure alone.
func ScoreSections(ctx context.Context, e embed.Embedder, profile persona.Profile, secs []types.Section) ([]types.ScoredSection, error) {
	texts := make([]string, len(secs))
	for i, sec := range secs {
		if sec.Body == "" {
			continue
		}
		texts[i] = embedText(sec)
	}

	sims, err := similarities(ctx, e, profile.Query, texts)
	if err != nil {
		return nil, err
	}

	scored := make([]types.ScoredSection, len(secs))
	for i, sec := range secs {
		var sem, kw float64
		if sec.Body != "" {
			sem = sims[i]
			kw = keywordScore(sec.Title+" "+sec.Body, profile.Keywords)
		}
		scored[i] = types.ScoredSection{
			Section: sec,
			Scores:  compose(sem, kw, sec.StructuralWeight),
		}
	}

	sortByScores(scored, func(s types.ScoredSection) types.Scores { return s.Scores })
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored, nil
}

// ChunkCandidate pairs a chunk with its parent section's structural
// weight, which the chunk inherits as its structural signal.
type ChunkCandidate struct {
	types.Chunk
	Structural float64
}

// ScoreChunks scores chunk candidates with the same three-signal formula
// as sections and returns the full chunk ranking.
func ScoreChunks(ctx context.Context, e embed.Embedder, profile persona.Profile, cands []ChunkCandidate) ([]types.ScoredChunk, error) {
	texts := make([]string, len(cands))
	for i, c := range cands {
		texts[i] = c.SectionTitle + ": " + c.Text
	}

	sims, err := similarities(ctx, e, profile.Query, texts)
	if err != nil {
		return nil, err
	}

	scored := make([]types.ScoredChunk, len(cands))
	for i, c := range cands {
		kw := keywordScore(texts[i], profile.Keywords)
		scored[i] = types.ScoredChunk{
			Chunk:  c.Chunk,
			Scores: compose(sims[i], kw, c.Structural),
		}
	}

	sortByScores(scored, func(s types.ScoredChunk) types.Scores { return s.Scores })
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored, nil
}

// similarities embeds the query and all non-empty texts in a single batch
// and returns the clamped cosine similarity per text. Duplicate texts are
// embedded once.
func similarities(ctx context.Context, e embed.Embedder, query string, texts []string) ([]float64, error) {
	batch := []string{query}
	index := map[string]int{query: 0}
	for _, t := range texts {
		if t == "" {
			continue
		}
		if _, ok := index[t]; !ok {
			index[t] = len(batch)
			batch = append(batch, t)
		}
	}

	vecs, err := e.Embed(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("embedding %d texts via %s: %w", len(batch), e.Name(), err)
	}
	if len(vecs) != len(batch) {
		return nil, fmt.Errorf("embedder %s returned %d vectors for %d texts", e.Name(), len(vecs), len(batch))
	}

	queryVec := vecs[0]
	sims := make([]float64, len(texts))
	for i, t := range texts {
		if t == "" {
			continue
		}
		sims[i] = embed.Similarity(queryVec, vecs[index[t]])
	}
	return sims, nil
}

// embedText builds the section text for embedding: heading plus body,
// capped. Chapter and all-caps headings get an importance prefix so the
// query embedding leans toward major sections.
func embedText(sec types.Section) string {
	text := sec.Title + " " + sec.Body
	if sec.Kind == types.HeadingChapter || sec.Kind == types.HeadingCaps {
		text = "Important section: " + text
	}
	if len(text) > sectionTextCap {
		cut := sectionTextCap
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

// keywordScore returns the fraction of profile keywords present in the
// text, capped at 1.0. Matching is case-insensitive substring containment;
// multi-word keywords match as phrases.
func keywordScore(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)

	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matched++
		}
	}

	score := float64(matched) / float64(len(keywords))
	if score > 1 {
		score = 1
	}
	return score
}

// compose combines the three signals with the fixed weights.
func compose(semantic, keyword, structural float64) types.Scores {
	return types.Scores{
		Semantic:   semantic,
		Keyword:    keyword,
		Structural: structural,
		Composite: types.WeightSemantic*semantic +
			types.WeightKeyword*keyword +
			types.WeightStructural*structural,
	}
}

// sortByScores sorts by composite descending with deterministic
// tie-breaks: higher structural score first, then original extraction
// order (via sort stability). The result is a strict total order over
// the input.
func sortByScores[T any](items []T, scores func(T) types.Scores) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := scores(items[i]), scores(items[j])
		if si.Composite != sj.Composite {
			return si.Composite > sj.Composite
		}
		return si.Structural > sj.Structural
	})
}
