package llm

import "context"

// Message roles mirror the chat-completion wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of a model request.
type Message struct {
	Role    string
	Content string
}

// Client generates a completion for an ordered list of messages. Invoke may
// fail on network, auth or rate-limit problems; callers decide what the user
// sees.
type Client interface {
	Invoke(ctx context.Context, messages []Message) (string, error)
}
