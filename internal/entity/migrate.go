package entity

import (
	"context"

	"github.com/ripple-lab/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Message{},
		&Like{},
		&Repost{},
		&Follower{},
		&Conversation{},
		&ConversationMember{},
		&ConversationMessage{},
	)
}
