// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfio

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "Hello world", "Hello world"},
		{"collapses space runs", "too    many   spaces", "too many spaces"},
		{"preserves newlines", "line one\nline two", "line one\nline two"},
		{"control runes become spaces", "tab\there\x00and\x07there", "tab here and there"},
		{"replacement rune removed", "wine�list", "wine list"},
		{"trims surrounding whitespace", "  \n padded \n  ", "padded"},
		{"tabs collapse with spaces", "a\t \tb", "a b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanKeepsBlankLineStructure(t *testing.T) {
	in := "First paragraph line.\n\nSecond paragraph line."
	got := Clean(in)
	if got != in {
		t.Errorf("Clean altered paragraph structure: %q", got)
	}
}

func TestExtractPagesMissingFile(t *testing.T) {
	r := NewReader()
	if _, err := r.ExtractPages("/nonexistent/file.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
