package entity

// Sender identifies who produced a chat message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one entry in a conversation. Messages are append-only and
// identified by a conversation-local id so pending actions can be attached
// and detached without relying on reference identity.
type ChatMessage struct {
	ID               int     `json:"id"`
	Sender           Sender  `json:"sender"`
	Text             string  `json:"text"`
	Action           *Action `json:"action,omitempty"`
	RequiresDecision bool    `json:"requires_decision,omitempty"`
}

// ConversationState holds the full state of one assistant conversation.
// It is mutated only through the conversation service's transition methods.
type ConversationState struct {
	Messages []ChatMessage `json:"messages"`

	// PendingMessageID is the id of the message currently awaiting a
	// confirm/cancel decision, or 0 when no decision is pending. At most
	// one message is pending at a time: a newer proposal supersedes it.
	PendingMessageID int `json:"pending_message_id,omitempty"`
}
