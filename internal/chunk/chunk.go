// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk splits section bodies into coherent, bounded pieces for
// subsection scoring. Paragraph boundaries come first; oversized
// paragraphs fall back to sentence boundaries; undersized fragments merge
// forward and anything still below the minimum is discarded. Boundaries
// are fully reproducible for identical input.
package chunk

import (
	"regexp"
	"strings"
)

// Chunking constants. MaxChars caps paragraph-assembled chunks,
// SentenceChars is the tighter target when sentence splitting kicks in,
// and MinChars is the floor below which a fragment carries no meaning on
// its own.
const (
	MaxChars      = 300
	SentenceChars = 200
	MinChars      = 40
)

var paragraphRe = regexp.MustCompile(`\n\s*\n`)

// Split breaks a section body into chunks. Each returned chunk is at most
// MaxChars long and at least MinChars, except that a body shorter than
// MinChars yields no chunks at all.
func Split(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	chunks := splitParagraphs(body)

	// Flat bodies without usable paragraph breaks fall back to
	// sentence assembly.
	if len(chunks) <= 1 && len(body) > MaxChars {
		chunks = splitSentences(body, SentenceChars)
	}

	return discardUndersized(mergeUndersized(chunks))
}

// splitParagraphs greedily packs paragraphs into chunks up to MaxChars.
// A single paragraph over the cap is handed to the sentence splitter.
func splitParagraphs(body string) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, para := range paragraphRe.Split(body, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(para) > MaxChars {
			flush()
			chunks = append(chunks, splitSentences(para, SentenceChars)...)
			continue
		}

		if current.Len() > 0 && current.Len()+1+len(para) > MaxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}

// splitSentences assembles sentences into chunks of about target chars.
// The splitter is punctuation-based: a sentence ends at '.', '!' or '?'
// followed by whitespace.
func splitSentences(text string, target int) []string {
	var chunks []string
	var current strings.Builder

	for _, sent := range sentences(text) {
		// A run-on sentence over the hard cap gets word-wrapped; cap
		// enforcement beats sentence integrity.
		if len(sent) > MaxChars {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, wrapWords(sent, target)...)
			continue
		}

		if current.Len() > 0 && current.Len()+1+len(sent) > target {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// sentences splits text on terminal punctuation followed by whitespace,
// keeping the punctuation with its sentence.
func sentences(text string) []string {
	var out []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') &&
			i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\n') {
			if s := strings.TrimSpace(current.String()); s != "" {
				out = append(out, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// mergeUndersized folds fragments below MinChars into the following chunk
// so short transitions stay attached to their context.
func mergeUndersized(chunks []string) []string {
	var out []string
	carry := ""

	for _, c := range chunks {
		if carry != "" {
			// Merge only while the cap holds; an unmergeable fragment
			// is dropped rather than breaching the cap.
			if len(carry)+1+len(c) <= MaxChars {
				c = carry + " " + c
			}
			carry = ""
		}
		if len(c) < MinChars {
			carry = c
			continue
		}
		out = append(out, c)
	}

	if carry != "" {
		if len(out) > 0 && len(out[len(out)-1])+1+len(carry) <= MaxChars {
			out[len(out)-1] = out[len(out)-1] + " " + carry
		} else if len(carry) >= MinChars {
			out = append(out, carry)
		}
		// A trailing fragment that cannot merge without breaching the
		// cap is discarded.
	}
	return out
}

// wrapWords hard-splits text at word boundaries into pieces of at most
// target chars. A single word longer than target is split mid-word at
// rune boundaries; the cap holds even for unbroken character runs.
func wrapWords(text string, target int) []string {
	var out []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if len(word) > target {
			if current.Len() > 0 {
				out = append(out, current.String())
				current.Reset()
			}
			out = append(out, splitWord(word, target)...)
			continue
		}

		if current.Len() > 0 && current.Len()+1+len(word) > target {
			out = append(out, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

// splitWord cuts one word into pieces of at most target bytes, never
// splitting inside a rune.
func splitWord(word string, target int) []string {
	var out []string
	var current strings.Builder

	for _, r := range word {
		if current.Len()+len(string(r)) > target {
			out = append(out, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

// discardUndersized drops any chunk still below the minimum after merging.
func discardUndersized(chunks []string) []string {
	var out []string
	for _, c := range chunks {
		if len(c) >= MinChars {
			out = append(out, c)
		}
	}
	return out
}
