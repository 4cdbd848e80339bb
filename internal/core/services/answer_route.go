package services

import (
	"strings"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
)

// recapPhrases are the fixed patterns that classify a turn as a request
// about the conversation itself rather than the document corpus.
// Matching is case-insensitive substring containment. Pattern matching
// is preferred over a model call here: the decision is latency-critical
// and must be deterministic.
var recapPhrases = []string{
	"co pytałem",
	"co pytalam",
	"co pytałam",
	"o co pytałem",
	"o co pytałam",
	"o co wcześniej pytałem",
	"moje poprzednie pytanie",
	"poprzednie pytania",
	"ostatnie pytanie",
	"historia rozmowy",
	"historię rozmowy",
	"podsumuj naszą rozmowę",
	"podsumuj rozmowę",
	"what did i ask",
	"my previous question",
	"my last question",
	"summarize our chat",
	"summarise our chat",
	"summarize our conversation",
	"conversation history",
}

// routeQuery classifies a user turn. Empty input and anything that does
// not match a recap phrase goes to the corpus path.
func routeQuery(input string) domain.Route {
	lowered := strings.ToLower(strings.TrimSpace(input))
	if lowered == "" {
		return domain.RouteRAG
	}
	for _, phrase := range recapPhrases {
		if strings.Contains(lowered, phrase) {
			return domain.RouteRecap
		}
	}
	return domain.RouteRAG
}
