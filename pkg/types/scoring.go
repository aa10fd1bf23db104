// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Signal weights for the composite relevance score. Fixed by design:
// ranking behavior must not drift with configuration.
const (
	WeightSemantic   = 0.5
	WeightKeyword    = 0.3
	WeightStructural = 0.2
)

// Output truncation limits. Fixed and independent of input size; shorter
// inputs truncate to whatever exists.
const (
	TopSections = 10
	TopChunks   = 15
)

// Scores holds the three relevance signals plus their weighted
// combination. All four values are in [0,1].
type Scores struct {
	// Semantic is the cosine similarity between the enhanced-query
	// embedding and the text embedding, clamped into [0,1].
	Semantic float64 `json:"semantic" yaml:"semantic"`

	// Keyword is the matched fraction of the persona/task keyword set.
	Keyword float64 `json:"keyword" yaml:"keyword"`

	// Structural is the section's structural weight.
	Structural float64 `json:"structural" yaml:"structural"`

	// Composite is WeightSemantic·Semantic + WeightKeyword·Keyword +
	// WeightStructural·Structural.
	Composite float64 `json:"composite" yaml:"composite"`
}

// ScoredSection is a Section with its relevance scores and final rank.
type ScoredSection struct {
	Section `yaml:",inline"`

	Scores Scores `json:"scores" yaml:"scores"`

	// Rank is the 1-based position in the global ranking across all
	// input documents. Ranks form a strict total order.
	Rank int `json:"rank" yaml:"rank"`
}

// Chunk is a coherent slice of one section's body, carrying its parent's
// identity for attribution.
type Chunk struct {
	// Document is the originating document ID.
	Document string `json:"document" yaml:"document"`

	// SectionTitle is the parent section's heading.
	SectionTitle string `json:"section_title" yaml:"section_title"`

	// Page is the parent section's page number.
	Page int `json:"page" yaml:"page"`

	// Text is the chunk content, bounded by the chunker's character cap.
	Text string `json:"text" yaml:"text"`
}

// ScoredChunk is a Chunk scored with the same three-signal formula as
// sections and ranked across all chunks.
type ScoredChunk struct {
	Chunk `yaml:",inline"`

	Scores Scores `json:"scores" yaml:"scores"`

	// Rank is the 1-based position in the global chunk ranking.
	Rank int `json:"rank" yaml:"rank"`
}
