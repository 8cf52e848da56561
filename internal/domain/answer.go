package domain

// AnswerKind tells a model-generated answer apart from the fallback returned
// when the remote call failed. Both are valid answers to show the user.
type AnswerKind int

const (
	AnswerGenerated AnswerKind = iota
	AnswerFallback
)

const (
	NoResponseText    = "No response received."
	RequestFailedText = "Error occurred while processing your request."
)

// Usage is the token accounting reported by the chat endpoint.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

type Answer struct {
	Kind    AnswerKind
	Text    string
	Sources []GroundingSource
	Usage   Usage
}

// FallbackAnswer is returned instead of an error by the chat client.
func FallbackAnswer() Answer {
	return Answer{Kind: AnswerFallback, Text: RequestFailedText}
}

func (a Answer) IsFallback() bool {
	return a.Kind == AnswerFallback
}
