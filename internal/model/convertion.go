package model

import (
	"time"

	"github.com/ripple-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:              user.ID,
		Name:            user.Name,
		DisplayName:     user.DisplayName,
		Bio:             user.Bio,
		ProfilePicture:  user.ProfilePicture,
		PinnedMessageID: user.PinnedMessageID.Int64,
	}
}

func ConvertMessage(message *entity.Message, authorName string) Message {
	if message == nil {
		return Message{}
	}

	return Message{
		ID:         message.ID,
		AuthorID:   message.AuthorID,
		AuthorName: authorName,
		Content:    message.Content,
		Attachment: message.Attachment,
		CreatedAt:  message.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertConversation(
	conversation *entity.Conversation, members []entity.ConversationMember,
) Conversation {
	if conversation == nil {
		return Conversation{}
	}

	memberIDs := []string{}
	for _, m := range members {
		memberIDs = append(memberIDs, m.UserID)
	}

	return Conversation{
		ID:            conversation.ID,
		MemberIDs:     memberIDs,
		LastMessageID: conversation.LastMessageID,
	}
}

func ConvertConversationMessage(message *entity.ConversationMessage) ConversationMessage {
	if message == nil {
		return ConversationMessage{}
	}

	return ConversationMessage{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		AuthorID:       message.AuthorID,
		Content:        message.Content,
		CreatedAt:      message.CreatedAt.Format(DefaultTimeLayout),
	}
}
