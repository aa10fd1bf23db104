// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/pdiddy/docsight/pkg/types"
)

const defaultGeminiModel = "text-embedding-004"

// GeminiEmbedder calls the Google Generative AI embedding API. Requires
// network access and an API key, so it is opt-in; the hash backend stays
// the default. The client is built once at construction and reused for
// the life of the process.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder returns an embedder for the configured model.
func NewGeminiEmbedder(ctx context.Context, cfg types.EmbeddingConfig) (*GeminiEmbedder, error) {
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiEmbedder{client: client, model: model}, nil
}

// Name returns the backend identifier.
func (e *GeminiEmbedder) Name() string { return "gemini" }

// Close releases the underlying API client.
func (e *GeminiEmbedder) Close() error { return e.client.Close() }

// Embed sends the batch through the API's batch endpoint in one round
// trip per call.
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	model := e.client.EmbeddingModel(e.model)
	batch := model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("gemini batch embed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d vectors for %d texts", len(resp.Embeddings), len(texts))
	}

	out := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, fmt.Errorf("gemini returned no embedding for text %d", i)
		}
		out[i] = emb.Values
	}
	return out, nil
}
