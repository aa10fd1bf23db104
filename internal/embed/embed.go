// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed maps text to fixed-length numeric vectors. The Embedder
// interface is batch-first: callers collect the independent texts of a
// stage into one call so remote backends amortize request overhead. Each
// backend is a pure function of its input text and deterministic for
// identical input.
package embed

import (
	"context"
	"fmt"
	"math"

	"github.com/pdiddy/docsight/pkg/types"
)

// Embedder computes embeddings for a batch of texts. Implementations
// return one vector per input text, in input order.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// New constructs the configured embedding backend. The backend is built
// once at process start and reused read-only for the whole run.
func New(ctx context.Context, cfg types.EmbeddingConfig) (Embedder, error) {
	switch cfg.Provider {
	case types.ProviderHash, "":
		return NewHashVectorizer(cfg.Dimensions), nil
	case types.ProviderOllama:
		return NewOllamaEmbedder(cfg), nil
	case types.ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini embedding backend requires an API key (gemini-api-key secret)")
		}
		return NewGeminiEmbedder(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q: use hash, ollama, or gemini", cfg.Provider)
	}
}

// Cosine returns the cosine similarity of two vectors in [-1,1]. Vectors
// of mismatched length or zero norm yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, sim))
}

// Similarity clamps cosine similarity into [0,1] for use as a scoring
// signal. Negative similarity carries no relevance.
func Similarity(a, b []float32) float64 {
	return math.Max(0, Cosine(a, b))
}
