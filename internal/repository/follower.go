package repository

import (
	"context"

	"github.com/ripple-lab/backend/internal/entity"
	"github.com/ripple-lab/backend/pkg/xcontext"
)

type FollowerRepository interface {
	Create(ctx context.Context, data *entity.Follower) error
	Delete(ctx context.Context, userID, targetID string) error
	Get(ctx context.Context, userID, targetID string) (*entity.Follower, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Follower, error)
	GetListByTargetID(ctx context.Context, targetID string) ([]entity.Follower, error)
}

type followerRepository struct{}

func NewFollowerRepository() FollowerRepository {
	return &followerRepository{}
}

func (r *followerRepository) Create(ctx context.Context, data *entity.Follower) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *followerRepository) Delete(ctx context.Context, userID, targetID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND target_id=?", userID, targetID).
		Delete(&entity.Follower{}).Error
}

func (r *followerRepository) Get(
	ctx context.Context, userID, targetID string,
) (*entity.Follower, error) {
	var record entity.Follower
	err := xcontext.DB(ctx).
		Where("user_id=? AND target_id=?", userID, targetID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *followerRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.Follower, error) {
	var records []entity.Follower
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followerRepository) GetListByTargetID(
	ctx context.Context, targetID string,
) ([]entity.Follower, error) {
	var records []entity.Follower
	if err := xcontext.DB(ctx).Where("target_id=?", targetID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
