package repository

import (
	"context"

	"github.com/ripple-lab/backend/internal/entity"
	"github.com/ripple-lab/backend/pkg/xcontext"
)

type ConversationRepository interface {
	Create(ctx context.Context, data *entity.Conversation, members []entity.ConversationMember) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	GetMembers(ctx context.Context, conversationID string) ([]entity.ConversationMember, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Conversation, error)
	CreateMessage(ctx context.Context, data *entity.ConversationMessage) error
	GetMessages(ctx context.Context, conversationID string, offset, limit int) ([]entity.ConversationMessage, error)
	UpdateLastMessageByID(ctx context.Context, conversationID string, messageID int64) error
}

type conversationRepository struct{}

func NewConversationRepository() ConversationRepository {
	return &conversationRepository{}
}

func (r *conversationRepository) Create(
	ctx context.Context, data *entity.Conversation, members []entity.ConversationMember,
) error {
	if err := xcontext.DB(ctx).Create(data).Error; err != nil {
		return err
	}

	return xcontext.DB(ctx).Create(members).Error
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	var record entity.Conversation
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *conversationRepository) GetMembers(
	ctx context.Context, conversationID string,
) ([]entity.ConversationMember, error) {
	var records []entity.ConversationMember
	err := xcontext.DB(ctx).
		Where("conversation_id=?", conversationID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *conversationRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.Conversation, error) {
	var records []entity.Conversation
	err := xcontext.DB(ctx).
		Joins("JOIN conversation_members ON conversation_members.conversation_id=conversations.id").
		Where("conversation_members.user_id=?", userID).
		Order("conversations.last_message_id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *conversationRepository) CreateMessage(
	ctx context.Context, data *entity.ConversationMessage,
) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *conversationRepository) GetMessages(
	ctx context.Context, conversationID string, offset, limit int,
) ([]entity.ConversationMessage, error) {
	var records []entity.ConversationMessage
	err := xcontext.DB(ctx).
		Where("conversation_id=?", conversationID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *conversationRepository) UpdateLastMessageByID(
	ctx context.Context, conversationID string, messageID int64,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Conversation{}).
		Where("id=?", conversationID).
		Update("last_message_id", messageID).Error
}
