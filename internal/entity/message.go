package entity

const (
	MinMessageLength = 1
	MaxMessageLength = 280
)

type Message struct {
	SnowFlakeBase
	AuthorID   string `gorm:"index"`
	Author     User   `gorm:"foreignKey:AuthorID"`
	Content    string
	Attachment string
}

type Like struct {
	SnowFlakeBase
	MessageID int64  `gorm:"uniqueIndex:idx_likes_message_user"`
	UserID    string `gorm:"uniqueIndex:idx_likes_message_user"`
}

type Repost struct {
	SnowFlakeBase
	MessageID int64  `gorm:"uniqueIndex:idx_reposts_message_user"`
	UserID    string `gorm:"uniqueIndex:idx_reposts_message_user"`
}
