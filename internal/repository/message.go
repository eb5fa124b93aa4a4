package repository

import (
	"context"

	"github.com/ripple-lab/backend/internal/entity"
	"github.com/ripple-lab/backend/pkg/xcontext"
)

type MessageRepository interface {
	Create(ctx context.Context, data *entity.Message) error
	GetByID(ctx context.Context, id int64) (*entity.Message, error)
	DeleteByID(ctx context.Context, id int64) error
	GetListByAuthorID(ctx context.Context, authorID string, offset, limit int) ([]entity.Message, error)
	GetFeed(ctx context.Context, authorIDs []string, offset, limit int) ([]entity.Message, error)
}

type messageRepository struct{}

func NewMessageRepository() MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, data *entity.Message) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*entity.Message, error) {
	var record entity.Message
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *messageRepository) DeleteByID(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Message{}).Error
}

func (r *messageRepository) GetListByAuthorID(
	ctx context.Context, authorID string, offset, limit int,
) ([]entity.Message, error) {
	var records []entity.Message
	err := xcontext.DB(ctx).
		Where("author_id=?", authorID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *messageRepository) GetFeed(
	ctx context.Context, authorIDs []string, offset, limit int,
) ([]entity.Message, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	var records []entity.Message
	err := xcontext.DB(ctx).
		Where("author_id IN (?)", authorIDs).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
