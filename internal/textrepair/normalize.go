// Package textrepair repairs text extraction artifacts.
//
// PDF extractors routinely inject newlines inside words (e.g.
// "Podró\nż\ne"), split short word suffixes onto their own lines, and
// lose paragraph boundaries behind soft line wraps. Retrieval and the
// relevance judge both degrade badly on such text, so this repair is
// load-bearing for answer quality, not cosmetic.
package textrepair

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	hyphenBreak  = regexp.MustCompile(`([\p{L}\p{N}])-\n([\p{L}\p{N}])`)
	manyNewlines = regexp.MustCompile(`\n{3,}`)
	numberedItem = regexp.MustCompile(`^\d+[.)]\s`)
)

// Normalize repairs extracted text and reconstructs paragraph boundaries.
// It is pure and total: empty input yields empty output, and the function
// is idempotent (normalising already-normalised text is a no-op).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\u00a0", " ")

	// A hyphen at a line break between two word characters is an
	// extraction artifact of a hyphen-broken word.
	text = hyphenBreak.ReplaceAllString(text, "$1$2")

	text = manyNewlines.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	lines = reassembleLetterRuns(lines)
	lines = reattachSuffixes(lines)
	lines = reconstructParagraphs(lines)

	out := strings.Join(lines, "\n")
	out = manyNewlines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// reassembleLetterRuns concatenates maximal runs of single-letter lines
// into one token. A short lowercase token is spliced onto the preceding
// mergeable line; anything else is emitted as its own line.
func reassembleLetterRuns(lines []string) []string {
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if !isSingleLetterLine(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}

		var token strings.Builder
		for i < len(lines) && isSingleLetterLine(lines[i]) {
			token.WriteString(lines[i])
			i++
		}
		out = spliceOrAppend(out, token.String())
	}

	return out
}

// reattachSuffixes merges short lowercase alphabetic lines (2-4 chars,
// typically a word suffix the extractor dropped onto its own line) back
// onto the previous line.
func reattachSuffixes(lines []string) []string {
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if isShortSuffixLine(line) {
			out = spliceOrAppend(out, line)
			continue
		}
		out = append(out, line)
	}

	return out
}

// spliceOrAppend joins token onto the last line of out when that line can
// absorb it, otherwise appends token as its own line. Only the
// immediately preceding line is considered: a blank line means the token
// did not come from a split word.
func spliceOrAppend(out []string, token string) []string {
	short := utf8.RuneCountInString(token) <= 2
	if short && isLowerAlpha(token) && len(out) > 0 && isMergeable(out[len(out)-1]) {
		out[len(out)-1] += token
		return out
	}
	if isShortSuffixLine(token) && len(out) > 0 && isMergeable(out[len(out)-1]) {
		out[len(out)-1] += token
		return out
	}
	return append(out, token)
}

// reconstructParagraphs joins consecutive prose lines into paragraphs and
// emits structural lines (bullets, numbered items, headings) unchanged.
//
// A blank line is a hard paragraph break only when the preceding line
// ends a sentence, either neighbour is structural, or the preceding line
// is long. Otherwise the blank is a soft wrap the extractor invented and
// the paragraph continues across it.
func reconstructParagraphs(lines []string) []string {
	const longLine = 80

	var out []string
	var para []string

	flush := func() {
		if len(para) > 0 {
			out = append(out, strings.Join(para, " "))
			para = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if line == "" {
			prev := lastNonBlank(lines, i)
			next := nextNonBlank(lines, i)
			hard := endsSentence(prev) ||
				isStructural(prev) || isStructural(next) ||
				utf8.RuneCountInString(prev) >= longLine
			if hard {
				flush()
				out = append(out, "")
			}
			continue
		}

		if isStructural(line) {
			flush()
			out = append(out, line)
			continue
		}

		para = append(para, line)
	}
	flush()

	return out
}

// isSingleLetterLine reports whether the line is exactly one letter.
func isSingleLetterLine(line string) bool {
	r, size := utf8.DecodeRuneInString(line)
	return size > 0 && size == len(line) && unicode.IsLetter(r)
}

// isShortSuffixLine reports whether the line is a 2-4 character lowercase
// alphabetic token.
func isShortSuffixLine(line string) bool {
	n := utf8.RuneCountInString(line)
	return n >= 2 && n <= 4 && isLowerAlpha(line)
}

func isLowerAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) || !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// isMergeable reports whether a line can absorb a spliced word fragment:
// it must end in a letter (not sentence punctuation) and must not be a
// list item.
func isMergeable(line string) bool {
	if line == "" || isBullet(line) || numberedItem.MatchString(line) {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(line)
	return unicode.IsLetter(last)
}

func isBullet(line string) bool {
	for _, marker := range []string{"- ", "• ", "* "} {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return line == "-" || line == "•" || line == "*"
}

// isStructural classifies a line as a bullet, numbered item, or
// heading-like line. Heading-like means short, starting uppercase, with
// at most one comma and no terminal sentence punctuation, or anything
// ending in a colon.
func isStructural(line string) bool {
	if line == "" {
		return false
	}
	if isBullet(line) || numberedItem.MatchString(line) {
		return true
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	if utf8.RuneCountInString(line) > 100 {
		return false
	}
	if endsSentence(line) {
		return false
	}
	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) {
		return false
	}
	return strings.Count(line, ",") <= 1
}

// endsSentence reports whether a line ends with terminal punctuation.
func endsSentence(line string) bool {
	if line == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(line)
	switch last {
	case '.', '!', '?', '…', ';':
		return true
	}
	return false
}

// lastNonBlank returns the closest non-blank line before index i.
func lastNonBlank(lines []string, i int) string {
	for j := i - 1; j >= 0; j-- {
		if lines[j] != "" {
			return lines[j]
		}
	}
	return ""
}

// nextNonBlank returns the closest non-blank line after index i.
func nextNonBlank(lines []string, i int) string {
	for j := i + 1; j < len(lines); j++ {
		if lines[j] != "" {
			return lines[j]
		}
	}
	return ""
}
