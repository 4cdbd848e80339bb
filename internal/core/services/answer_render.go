package services

import (
	"regexp"
	"strings"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
)

// Refusal is the canonical no-information reply. Model denials phrased
// differently are normalised to this exact string so callers and tests
// can match on it.
const Refusal = "Nie mam tej informacji w dostępnych dokumentach."

// UnsupportedLanguage is returned for questions the language gate
// rejects.
const UnsupportedLanguage = "Przepraszam, obsługuję tylko pytania w języku polskim."

// preambleRe matches boilerplate openings the model prepends despite
// instructions. The match is anchored to the start and consumes the
// trailing punctuation and whitespace.
var preambleRe = regexp.MustCompile(`(?i)^(na podstawie (dostarczonego |podanego |powyższego )?kontekstu|zgodnie z (dostarczonym |podanym )?kontekstem|based on the (provided |given )?context|according to the (provided |given )?context)[,:]?\s*`)

// denialPhrases mark a model reply as a refusal regardless of its exact
// wording. Matching is case-insensitive substring containment.
var denialPhrases = []string{
	"nie ma jej w dokumentach",
	"nie ma tej informacji",
	"nie ma takiej informacji",
	"brak informacji",
	"brak takiej informacji",
	"nie znajduje się w kontekście",
	"nie znajduje się w dokumentach",
	"nie zawiera informacji",
	"nie zawiera odpowiedzi",
	"nie mogę odpowiedzieć na to pytanie",
	"no information in the documents",
	"does not contain the answer",
	"cannot answer this question",
}

// renderAnswer cleans the raw model output and attaches the source
// list. A reply recognised as a denial collapses to the canonical
// refusal with no sources: citing documents under an admission of
// ignorance would misattribute the refusal to them.
func renderAnswer(raw string, chunks []domain.ScoredChunk) domain.Answer {
	text := strings.TrimSpace(raw)
	text = preambleRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if text == "" || isDenial(text) {
		return domain.Answer{Text: Refusal, Route: domain.RouteRAG}
	}

	sources := dedupSources(chunks)
	if len(sources) > 0 {
		var b strings.Builder
		b.WriteString(text)
		b.WriteString("\n\nŹródła:\n")
		for _, src := range sources {
			b.WriteString("- ")
			b.WriteString(src)
			b.WriteString("\n")
		}
		text = strings.TrimRight(b.String(), "\n")
	}

	return domain.Answer{
		Text:     text,
		Route:    domain.RouteRAG,
		Sources:  sources,
		Grounded: true,
	}
}

func isDenial(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range denialPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// dedupSources keeps first-seen order, which follows retrieval rank.
func dedupSources(chunks []domain.ScoredChunk) []string {
	seen := make(map[string]bool, len(chunks))
	var sources []string
	for _, sc := range chunks {
		name := sc.Chunk.File
		if name == "" {
			name = "unknown"
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		sources = append(sources, name)
	}
	return sources
}
