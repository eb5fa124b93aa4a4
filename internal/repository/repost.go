package repository

import (
	"context"

	"github.com/ripple-lab/backend/internal/entity"
	"github.com/ripple-lab/backend/pkg/xcontext"
)

type RepostRepository interface {
	Create(ctx context.Context, data *entity.Repost) error
	Delete(ctx context.Context, messageID int64, userID string) error
	Get(ctx context.Context, messageID int64, userID string) (*entity.Repost, error)
	CountByMessageID(ctx context.Context, messageID int64) (int64, error)
}

type repostRepository struct{}

func NewRepostRepository() RepostRepository {
	return &repostRepository{}
}

func (r *repostRepository) Create(ctx context.Context, data *entity.Repost) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *repostRepository) Delete(ctx context.Context, messageID int64, userID string) error {
	return xcontext.DB(ctx).
		Where("message_id=? AND user_id=?", messageID, userID).
		Delete(&entity.Repost{}).Error
}

func (r *repostRepository) Get(
	ctx context.Context, messageID int64, userID string,
) (*entity.Repost, error) {
	var record entity.Repost
	err := xcontext.DB(ctx).
		Where("message_id=? AND user_id=?", messageID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *repostRepository) CountByMessageID(ctx context.Context, messageID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Repost{}).
		Where("message_id=?", messageID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
