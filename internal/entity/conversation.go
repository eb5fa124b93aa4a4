package entity

type Conversation struct {
	Base
	LastMessageID int64
}

type ConversationMember struct {
	Base
	ConversationID string `gorm:"uniqueIndex:idx_conversation_members"`
	UserID         string `gorm:"uniqueIndex:idx_conversation_members"`
}

type ConversationMessage struct {
	SnowFlakeBase
	ConversationID string `gorm:"index"`
	AuthorID       string
	Content        string
}
