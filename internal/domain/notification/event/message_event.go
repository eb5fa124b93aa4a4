package event

import "github.com/ripple-lab/backend/internal/model"

const (
	NewMessageOp        = "new message"
	DeleteMessageOp     = "delete message"
	NewPrivateMessageOp = "new private message"
)

// NEW MESSAGE EVENT (inbound)
// The message was already persisted through the API, the event only refers to
// it by id.
type NewMessageEvent struct {
	Path      string `json:"path"`
	MessageID int64  `json:"id"`
}

// DELETE MESSAGE EVENT (inbound)
type DeleteMessageEvent struct {
	Path      string `json:"path"`
	MessageID int64  `json:"id"`
}

// NEW PRIVATE MESSAGE EVENT (inbound)
type NewPrivateMessageEvent struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	Data           string `json:"data"`
}

// MESSAGE CREATED EVENT
type MessageCreatedEvent model.Message

func (*MessageCreatedEvent) Op() string {
	return NewMessageOp
}

// MESSAGE DELETED EVENT
type MessageDeletedEvent struct {
	MessageID int64 `json:"id"`
}

func (*MessageDeletedEvent) Op() string {
	return DeleteMessageOp
}

// CONVERSATION MESSAGE CREATED EVENT
type ConversationMessageCreatedEvent model.ConversationMessage

func (*ConversationMessageCreatedEvent) Op() string {
	return NewPrivateMessageOp
}
