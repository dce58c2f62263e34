package constant

const (
	// MaxConversationTurns bounds a session's history; the oldest turns are evicted first.
	MaxConversationTurns = 10

	MetadataNotSpecified = "Not Specified"
	MetadataNotAvailable = "N/A"

	FallbackReply = "I'm having trouble right now. Can we try again?"

	ContextHeader      = "Context Information from Database:"
	ConversationHeader = "Current conversation:"

	TaskTypeRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskTypeRetrievalQuery    = "RETRIEVAL_QUERY"

	SessionCookieName = "session_id"
	SessionHeaderName = "X-Session-Id"
)

// FortKeywords gate retrieval: a query mentioning none of them skips the vector search.
var FortKeywords = []string{
	"fort",
	"castle",
	"fortress",
	"citadel",
	"maharashtra",
	"history",
	"architecture",
}
