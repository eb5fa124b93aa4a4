package repository

import (
	"context"

	"github.com/ripple-lab/backend/internal/entity"
	"github.com/ripple-lab/backend/pkg/xcontext"
)

type LikeRepository interface {
	Create(ctx context.Context, data *entity.Like) error
	Delete(ctx context.Context, messageID int64, userID string) error
	Get(ctx context.Context, messageID int64, userID string) (*entity.Like, error)
	CountByMessageID(ctx context.Context, messageID int64) (int64, error)
}

type likeRepository struct{}

func NewLikeRepository() LikeRepository {
	return &likeRepository{}
}

func (r *likeRepository) Create(ctx context.Context, data *entity.Like) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *likeRepository) Delete(ctx context.Context, messageID int64, userID string) error {
	return xcontext.DB(ctx).
		Where("message_id=? AND user_id=?", messageID, userID).
		Delete(&entity.Like{}).Error
}

func (r *likeRepository) Get(
	ctx context.Context, messageID int64, userID string,
) (*entity.Like, error) {
	var record entity.Like
	err := xcontext.DB(ctx).
		Where("message_id=? AND user_id=?", messageID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *likeRepository) CountByMessageID(ctx context.Context, messageID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Like{}).
		Where("message_id=?", messageID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
