// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chunk

import (
	"strings"
	"testing"
)

func TestSplitEmpty(t *testing.T) {
	if got := Split(""); got != nil {
		t.Errorf("Split(\"\") = %v, want nil", got)
	}
	if got := Split("   \n\t  "); got != nil {
		t.Errorf("Split(whitespace) = %v, want nil", got)
	}
}

func TestSplitShortBodySingleChunk(t *testing.T) {
	body := "A single modest paragraph that fits comfortably inside one chunk."
	got := Split(body)
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1: %v", len(got), got)
	}
	if got[0] != body {
		t.Errorf("chunk = %q, want body unchanged", got[0])
	}
}

func TestSplitBodyBelowMinimumDiscarded(t *testing.T) {
	if got := Split("Too short."); got != nil {
		t.Errorf("got %v, want nil for body below minimum", got)
	}
}

func TestSplitParagraphPacking(t *testing.T) {
	para := strings.Repeat("word ", 25) // ~125 chars
	body := strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para)

	got := Split(body)
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2 (two paragraphs packed, one alone): %v", len(got), got)
	}
	for _, c := range got {
		if len(c) > MaxChars {
			t.Errorf("chunk length %d exceeds cap %d", len(c), MaxChars)
		}
	}
}

func TestSplitOversizedParagraphFallsToSentences(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		sb.WriteString("This sentence pads the paragraph well past the chunk cap with steady filler words. ")
	}
	body := strings.TrimSpace(sb.String())

	got := Split(body)
	if len(got) < 2 {
		t.Fatalf("got %d chunks, want several: %v", len(got), got)
	}
	for _, c := range got {
		if len(c) > MaxChars {
			t.Errorf("chunk length %d exceeds cap %d: %q", len(c), MaxChars, c)
		}
		if len(c) < MinChars {
			t.Errorf("chunk length %d below minimum %d: %q", len(c), MinChars, c)
		}
	}
}

func TestSplitRunOnSentenceWrapped(t *testing.T) {
	// One unbroken 600-char "sentence" with no terminal punctuation must
	// still respect the cap via word wrapping.
	body := strings.TrimSpace(strings.Repeat("unbroken ", 70))

	got := Split(body)
	if len(got) == 0 {
		t.Fatal("got no chunks")
	}
	for _, c := range got {
		if len(c) > MaxChars {
			t.Errorf("chunk length %d exceeds cap %d", len(c), MaxChars)
		}
	}
}

func TestSplitNoTextLost(t *testing.T) {
	body := "First paragraph with enough words to stand on its own as a chunk here.\n\n" +
		"Second paragraph also carrying plenty of words for a standalone chunk.\n\n" +
		"Third paragraph rounds out the body with yet more standalone content."

	got := Split(body)
	joined := strings.Join(got, " ")
	for _, word := range strings.Fields(body) {
		if !strings.Contains(joined, word) {
			t.Errorf("word %q missing from chunks", word)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	body := strings.Repeat("Sentences accumulate into a respectable body of text for splitting. ", 12)

	first := Split(body)
	for i := 0; i < 10; i++ {
		again := Split(body)
		if len(again) != len(first) {
			t.Fatalf("chunk count changed: %d vs %d", len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("chunk %d changed across runs", j)
			}
		}
	}
}

func TestMergeUndersized(t *testing.T) {
	long := strings.Repeat("x", 100)

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "short fragment merges forward",
			in:   []string{"tiny bit", long},
			want: []string{"tiny bit " + long},
		},
		{
			name: "trailing fragment merges backward",
			in:   []string{long, "tail bit"},
			want: []string{long + " tail bit"},
		},
		{
			name: "unmergeable fragment dropped",
			in:   []string{"tiny", strings.Repeat("y", MaxChars)},
			want: []string{strings.Repeat("y", MaxChars)},
		},
		{
			name: "nothing to merge",
			in:   []string{long, long},
			want: []string{long, long},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeUndersized(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d chunks, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSentences(t *testing.T) {
	got := sentences("First one. Second one! Third one? And a trailing fragment")
	want := []string{"First one.", "Second one!", "Third one?", "And a trailing fragment"}
	if len(got) != len(want) {
		t.Fatalf("sentences = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSentencesKeepsAbbreviationAdjacentText(t *testing.T) {
	// A period not followed by whitespace does not end a sentence.
	got := sentences("Version 2.5 shipped today. Done.")
	if len(got) != 2 {
		t.Fatalf("sentences = %v, want 2 entries", got)
	}
	if got[0] != "Version 2.5 shipped today." {
		t.Errorf("first sentence = %q", got[0])
	}
}

func TestSplitUnbrokenRunRespectsCap(t *testing.T) {
	// A whitespace-free run far over the cap has no word or sentence
	// boundaries at all; it must still be cut into cap-sized pieces.
	body := strings.Repeat("onelongrunofcharacters", 40)

	got := Split(body)
	if len(got) < 2 {
		t.Fatalf("got %d chunks, want several: %v", len(got), got)
	}
	var total int
	for _, c := range got {
		if len(c) > MaxChars {
			t.Errorf("chunk length %d exceeds cap %d", len(c), MaxChars)
		}
		total += len(c)
	}
	if total != len(body) {
		t.Errorf("reassembled length %d, want %d", total, len(body))
	}
}

func TestWrapWordsMultibyteRunes(t *testing.T) {
	word := strings.Repeat("é", 150) // 300 bytes, no boundaries
	for _, c := range wrapWords(word, 100) {
		if len(c) > 100 {
			t.Errorf("piece length %d exceeds target", len(c))
		}
		for _, r := range c {
			if r != 'é' {
				t.Fatalf("rune split mid-sequence: %q", c)
			}
		}
	}
}

func TestSplitCapInvariant(t *testing.T) {
	bodies := []string{
		strings.Repeat("Filler sentence with a steady cadence keeps arriving. ", 30),
		strings.Repeat("onelongrunofcharacters", 40),
		strings.Repeat("Paragraph block here.\n\n", 20),
		"Mixed. " + strings.Repeat("pad ", 200) + "\n\nAnd a closing paragraph with enough length to survive merging.",
	}

	for i, body := range bodies {
		for _, c := range Split(body) {
			if len(c) > MaxChars {
				t.Errorf("body %d: chunk length %d exceeds cap %d", i, len(c), MaxChars)
			}
		}
	}
}
