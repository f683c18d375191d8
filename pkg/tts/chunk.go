package tts

import (
	"strings"
	"unicode"
)

// sentenceEnd reports runes that close a sentence, including the Devanagari danda.
func sentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '।', '॥', '\n':
		return true
	}
	return false
}

// Chunks splits text into pieces of at most limit runes. Sentences are kept
// whole when they fit; longer sentences break at spaces, and single words
// longer than limit are cut hard.
func Chunks(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxChunkRunes
	}

	var out []string
	var cur []rune
	flush := func() {
		if s := strings.TrimSpace(string(cur)); s != "" {
			out = append(out, s)
		}
		cur = cur[:0]
	}

	for _, sentence := range splitSentences(text) {
		s := []rune(sentence)
		if len(cur) > 0 && !unicode.IsSpace(cur[len(cur)-1]) {
			s = append([]rune{' '}, s...)
		}
		if len(cur)+len(s) <= limit {
			cur = append(cur, s...)
			continue
		}
		s = []rune(strings.TrimSpace(sentence))
		flush()
		if len(s) <= limit {
			cur = append(cur, s...)
			continue
		}
		for _, word := range strings.Fields(sentence) {
			w := []rune(word)
			for len(w) > limit {
				flush()
				out = append(out, string(w[:limit]))
				w = w[limit:]
			}
			need := len(w)
			if len(cur) > 0 {
				need++
			}
			if len(cur)+need > limit {
				flush()
			}
			if len(cur) > 0 {
				cur = append(cur, ' ')
			}
			cur = append(cur, w...)
		}
	}
	flush()
	return out
}

// splitSentences cuts after each sentence terminator, keeping the terminator
// and any following space with the sentence.
func splitSentences(text string) []string {
	var out []string
	rs := []rune(text)
	start := 0
	for i := 0; i < len(rs); i++ {
		if !sentenceEnd(rs[i]) {
			continue
		}
		j := i + 1
		for j < len(rs) && unicode.IsSpace(rs[j]) {
			j++
		}
		out = append(out, string(rs[start:j]))
		start = j
		i = j - 1
	}
	if start < len(rs) {
		out = append(out, string(rs[start:]))
	}
	return out
}
