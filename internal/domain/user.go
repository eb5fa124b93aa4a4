package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ripple-lab/backend/internal/entity"
	"github.com/ripple-lab/backend/internal/model"
	"github.com/ripple-lab/backend/internal/repository"
	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateMe(context.Context, *model.UpdateMeRequest) (*model.UpdateMeResponse, error)
	FollowUser(context.Context, *model.FollowUserRequest) (*model.FollowUserResponse, error)
	UnfollowUser(context.Context, *model.UnfollowUserRequest) (*model.UnfollowUserResponse, error)
}

type userDomain struct {
	userRepo     repository.UserRepository
	followerRepo repository.FollowerRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
) *userDomain {
	return &userDomain{
		userRepo:     userRepo,
		followerRepo: followerRepo,
	}
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) UpdateMe(
	ctx context.Context, req *model.UpdateMeRequest,
) (*model.UpdateMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	update := &entity.User{
		DisplayName:    req.DisplayName,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	}

	if err := d.userRepo.UpdateByID(ctx, userID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) FollowUser(
	ctx context.Context, req *model.FollowUserRequest,
) (*model.FollowUserResponse, error) {
	target, err := d.userRepo.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if target.ID == userID {
		return nil, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	_, err = d.followerRepo.Get(ctx, userID, target.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You have followed this user")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get follower record: %v", err)
		return nil, errorx.Unknown
	}

	follower := &entity.Follower{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   userID,
		TargetID: target.ID,
	}

	if err := d.followerRepo.Create(ctx, follower); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follower: %v", err)
		return nil, errorx.Unknown
	}

	return &model.FollowUserResponse{}, nil
}

func (d *userDomain) UnfollowUser(
	ctx context.Context, req *model.UnfollowUserRequest,
) (*model.UnfollowUserResponse, error) {
	target, err := d.userRepo.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	err = d.followerRepo.Delete(ctx, xcontext.RequestUserID(ctx), target.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follower: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfollowUserResponse{}, nil
}
