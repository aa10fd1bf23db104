// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// defaultDimensions is the hash vector length. Large enough that token
// collisions stay rare for section-sized texts.
const defaultDimensions = 256

// HashVectorizer is the built-in offline embedding backend: token and
// token-bigram counts are feature-hashed into a fixed-length vector and
// L2-normalized. Crude next to a sentence-transformer, but CPU-only,
// dependency-free, and fully deterministic, which the scoring stage and
// the idempotence guarantee rely on.
type HashVectorizer struct {
	dims int
}

// NewHashVectorizer returns a vectorizer with the given dimension count,
// or the default when dims is zero or negative.
func NewHashVectorizer(dims int) *HashVectorizer {
	if dims <= 0 {
		dims = defaultDimensions
	}
	return &HashVectorizer{dims: dims}
}

// Name returns the backend identifier.
func (v *HashVectorizer) Name() string { return "hash" }

// Embed vectorizes each text independently. It never fails and ignores
// the context; the signature matches the remote backends.
func (v *HashVectorizer) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = v.vectorize(text)
	}
	return out, nil
}

func (v *HashVectorizer) vectorize(text string) []float32 {
	vec := make([]float32, v.dims)
	tokens := tokenize(text)

	for i, tok := range tokens {
		vec[v.bucket(tok)]++
		if i+1 < len(tokens) {
			// Bigrams give the vector a little word-order sensitivity.
			vec[v.bucket(tok+" "+tokens[i+1])]++
		}
	}

	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec
}

func (v *HashVectorizer) bucket(token string) int {
	h := fnv.New32a()
	h.Write([]byte(token))
	return int(h.Sum32() % uint32(v.dims))
}

// tokenize lowercases and splits on non-alphanumeric runes.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
