package services

import "strings"

// polishDiacritics are letters unique to Polish among the candidate
// languages; any occurrence settles the question immediately.
const polishDiacritics = "ąćęłńóśźż"

// greetings that pass the gate even though they carry no diacritic and
// no stop-word evidence. A bare "hej" must not be refused as foreign.
var polishGreetings = map[string]bool{
	"cześć":        true,
	"czesc":        true,
	"hej":          true,
	"siema":        true,
	"witam":        true,
	"witaj":        true,
	"dzień dobry":  true,
	"dzien dobry":  true,
	"dobry wieczór": true,
	"dobry wieczor": true,
}

// isLikelyPolish decides whether the input is in the supported
// conversation language. The heuristic is approximate by design: it
// checks diacritic presence first, then scores stop-word overlap
// between the Polish and English candidates. Inputs with no evidence
// either way pass, because a short noun phrase cannot be proven foreign.
func isLikelyPolish(input string) bool {
	lowered := strings.ToLower(strings.TrimSpace(input))
	if lowered == "" {
		return true
	}

	if strings.ContainsAny(lowered, polishDiacritics) {
		return true
	}

	if polishGreetings[lowered] {
		return true
	}

	var pl, en int
	for _, token := range strings.Fields(lowered) {
		token = strings.Trim(token, ".,!?;:()\"'")
		if polishStopwords[token] {
			pl++
		}
		if englishStopwords[token] {
			en++
		}
	}
	return en <= pl
}
