package chunker

import (
	"strings"
	"unicode/utf8"
)

// structuralSeparators is the priority-ordered list used by the first
// split stage. Earlier entries preserve stronger semantic boundaries.
var structuralSeparators = []string{
	"\n## ",
	"\n# ",
	"\n### ",
	"\n- ",
	"\n• ",
	"\n1. ",
	"\nStep ",
	"\n\n",
	"\n",
	" ",
}

// splitStructural recursively splits text on the separator list, then
// greedily merges the pieces back into chunks of at most size runes with
// the requested overlap carried between neighbours.
func splitStructural(text string, size, overlap int) []string {
	pieces := splitRecursive(text, structuralSeparators, size)
	return mergePieces(pieces, size, overlap)
}

// splitRecursive breaks text into pieces no longer than size runes,
// preferring the earliest separator that occurs in the text. Separators
// stay attached to the following piece so no characters are lost.
func splitRecursive(text string, seps []string, size int) []string {
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}
	if len(seps) == 0 {
		return splitRunes(text, size)
	}

	sep := seps[0]
	rest := seps[1:]
	if !strings.Contains(text, sep) {
		return splitRecursive(text, rest, size)
	}

	parts := strings.Split(text, sep)
	var out []string
	for i, part := range parts {
		if i > 0 {
			part = sep + part
		}
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) > size {
			out = append(out, splitRecursive(part, rest, size)...)
		} else {
			out = append(out, part)
		}
	}
	return out
}

// mergePieces packs consecutive pieces into chunks of at most size runes.
// Each emitted chunk seeds the next one with its trailing overlap runes,
// so neighbouring chunks share context across the cut.
func mergePieces(pieces []string, size, overlap int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	emit := func() string {
		chunk := current.String()
		chunks = append(chunks, chunk)
		current.Reset()
		currentLen = 0
		return chunk
	}

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)
		if currentLen > 0 && currentLen+pieceLen > size {
			chunk := emit()
			if overlap > 0 {
				tail := tailRunes(chunk, overlap)
				current.WriteString(tail)
				currentLen = utf8.RuneCountInString(tail)
			}
		}
		current.WriteString(piece)
		currentLen += pieceLen
	}
	if currentLen > 0 {
		emit()
	}

	return chunks
}

// splitTokens bounds a chunk by token count. Chunks within the limit pass
// through byte-identical; oversize chunks are re-cut into overlapping
// word windows. Tokens are approximated by whitespace-delimited words
// with a runes/4 floor for pathological unbroken input.
func splitTokens(text string, maxTokens, overlap int) []string {
	if countTokens(text) <= maxTokens {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) <= 1 {
		// A single giant token: fall back to a rune split scaled by the
		// 4-chars-per-token approximation.
		return splitRunes(text, maxTokens*4)
	}

	step := maxTokens - overlap
	if step <= 0 {
		step = maxTokens
	}

	var out []string
	for start := 0; start < len(words); start += step {
		end := start + maxTokens
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return out
}

// countTokens estimates the token count of text.
func countTokens(text string) int {
	words := len(strings.Fields(text))
	if floor := utf8.RuneCountInString(text) / 4; floor > words {
		return floor
	}
	return words
}

// splitRunes cuts text into fixed-size rune windows. Last resort when no
// separator is available.
func splitRunes(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}

// tailRunes returns the last n runes of s.
func tailRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
