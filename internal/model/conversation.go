package model

type Conversation struct {
	ID            string   `json:"id"`
	MemberIDs     []string `json:"member_ids"`
	LastMessageID int64    `json:"last_message_id,omitempty"`
}

type ConversationMessage struct {
	ID             int64  `json:"id"`
	ConversationID string `json:"conversation_id"`
	AuthorID       string `json:"author_id"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}

type CreateConversationRequest struct {
	MemberNames []string `json:"member_names"`
}

type CreateConversationResponse struct {
	Conversation Conversation `json:"conversation"`
}

type GetMyConversationsRequest struct{}

type GetMyConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type CreateConversationMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

type CreateConversationMessageResponse struct {
	Message ConversationMessage `json:"message"`
}

type GetConversationMessagesRequest struct {
	ConversationID string `json:"conversation_id"`
	Offset         int    `json:"offset"`
	Limit          int    `json:"limit"`
}

type GetConversationMessagesResponse struct {
	Messages []ConversationMessage `json:"messages"`
}
