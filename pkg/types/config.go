// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// EmbeddingProvider identifies the embedding backend.
type EmbeddingProvider string

const (
	// ProviderHash is the built-in offline feature-hashing vectorizer.
	ProviderHash EmbeddingProvider = "hash"

	// ProviderOllama is a local Ollama-compatible embedding server.
	ProviderOllama EmbeddingProvider = "ollama"

	// ProviderGemini is the Google Generative AI embedding API.
	ProviderGemini EmbeddingProvider = "gemini"
)

// EmbeddingConfig holds settings for the embedding collaborator. The
// backend is constructed once per process and reused read-only for the
// whole run.
type EmbeddingConfig struct {
	// Provider selects the backend: hash, ollama, or gemini (default hash).
	Provider EmbeddingProvider `json:"provider" yaml:"provider"`

	// Model is the backend model identifier. Ignored by the hash
	// provider; defaults per backend otherwise.
	Model string `json:"model" yaml:"model"`

	// Dimensions is the hash vectorizer's vector length (default 256).
	Dimensions int `json:"dimensions" yaml:"dimensions"`

	// BaseURL is the Ollama server address (default http://localhost:11434).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey authenticates the Gemini backend. Usually supplied via the
	// gemini-api-key secret rather than config.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout is the HTTP request timeout for remote backends.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PersonaConfig holds settings for persona/task keyword enhancement.
type PersonaConfig struct {
	// LexiconFile is an optional YAML file of persona keyword sets that
	// extends or overrides the built-in defaults.
	LexiconFile string `json:"lexicon_file,omitempty" yaml:"lexicon_file,omitempty"`
}

// StoreConfig holds settings for the optional results store.
type StoreConfig struct {
	// Path is the SQLite database file (default docsight.db).
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default retrieval limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Persona   PersonaConfig   `json:"persona" yaml:"persona"`
	Store     StoreConfig     `json:"store" yaml:"store"`
}
