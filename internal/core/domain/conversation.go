package domain

// Turn roles. The answering pipeline only distinguishes the person asking
// from the assistant replying.
const (
	RoleHuman     = "human"
	RoleAssistant = "assistant"
)

// Turn is a single role-tagged message in a conversation.
type Turn struct {
	// Role is RoleHuman or RoleAssistant.
	Role string

	// Content is the message text.
	Content string
}

// Route classifies a user turn.
type Route int

const (
	// RouteRAG answers from the document corpus.
	RouteRAG Route = iota

	// RouteRecap answers about the conversation itself
	// ("what did I ask before?").
	RouteRecap
)

// String returns the route name for logging.
func (r Route) String() string {
	switch r {
	case RouteRecap:
		return "recap"
	default:
		return "rag"
	}
}

// Answer is the final user-visible result of one pipeline run.
type Answer struct {
	// Text is the rendered message, including any source attribution.
	Text string

	// Route records which path produced the answer.
	Route Route

	// Sources lists the deduplicated display names of the documents the
	// answer was grounded on. Empty for recaps and refusals.
	Sources []string

	// Grounded is false when the pipeline short-circuited to the
	// canonical refusal instead of synthesising from context.
	Grounded bool
}
