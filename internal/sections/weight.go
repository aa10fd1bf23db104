// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sections

import "github.com/pdiddy/docsight/pkg/types"

// Base structural weights per heading kind. The order is fixed:
// numbered > chapter > caps > implicit.
var kindBase = map[types.HeadingKind]float64{
	types.HeadingNumbered: 0.9,
	types.HeadingChapter:  0.75,
	types.HeadingCaps:     0.6,
	types.HeadingImplicit: 0.4,
}

// Body-length adjustment thresholds, in bytes of cleaned body text.
// Moderate-length sections carry more signal than stubs or walls of text.
const (
	shortBody    = 80
	idealBodyMin = 200
	idealBodyMax = 4000
	longBody     = 8000
)

// Weight derives the structural importance of a section from its heading
// kind and body length, normalized into [0,1].
func Weight(kind types.HeadingKind, bodyLen int) float64 {
	w, ok := kindBase[kind]
	if !ok {
		w = kindBase[types.HeadingImplicit]
	}

	switch {
	case bodyLen < shortBody:
		w -= 0.15
	case bodyLen >= idealBodyMin && bodyLen <= idealBodyMax:
		w += 0.1
	case bodyLen > longBody:
		w -= 0.05
	}

	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
