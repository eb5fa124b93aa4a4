package domain

import (
	"context"
	"database/sql"
	"errors"
	"unicode/utf8"

	"github.com/ripple-lab/backend/internal/entity"
	"github.com/ripple-lab/backend/internal/model"
	"github.com/ripple-lab/backend/internal/repository"
	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MessageDomain interface {
	Create(context.Context, *model.CreateMessageRequest) (*model.CreateMessageResponse, error)
	Get(context.Context, *model.GetMessageRequest) (*model.GetMessageResponse, error)
	Delete(context.Context, *model.DeleteMessageRequest) (*model.DeleteMessageResponse, error)
	Pin(context.Context, *model.PinMessageRequest) (*model.PinMessageResponse, error)
	GetFeed(context.Context, *model.GetFeedRequest) (*model.GetFeedResponse, error)
	GetUserMessages(context.Context, *model.GetUserMessagesRequest) (*model.GetUserMessagesResponse, error)
	Like(context.Context, *model.LikeMessageRequest) (*model.LikeMessageResponse, error)
	Unlike(context.Context, *model.UnlikeMessageRequest) (*model.UnlikeMessageResponse, error)
	Repost(context.Context, *model.RepostMessageRequest) (*model.RepostMessageResponse, error)
}

type messageDomain struct {
	messageRepo  repository.MessageRepository
	userRepo     repository.UserRepository
	followerRepo repository.FollowerRepository
	likeRepo     repository.LikeRepository
	repostRepo   repository.RepostRepository
}

func NewMessageDomain(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
	likeRepo repository.LikeRepository,
	repostRepo repository.RepostRepository,
) *messageDomain {
	return &messageDomain{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		followerRepo: followerRepo,
		likeRepo:     likeRepo,
		repostRepo:   repostRepo,
	}
}

func (d *messageDomain) Create(
	ctx context.Context, req *model.CreateMessageRequest,
) (*model.CreateMessageResponse, error) {
	length := utf8.RuneCountInString(req.Content)
	if length < entity.MinMessageLength || length > entity.MaxMessageLength {
		return nil, errorx.New(errorx.BadRequest,
			"Message must be between %d and %d characters",
			entity.MinMessageLength, entity.MaxMessageLength)
	}

	author, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get author: %v", err)
		return nil, errorx.Unknown
	}

	msg := &entity.Message{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		AuthorID:      author.ID,
		Content:       req.Content,
		Attachment:    req.Attachment,
	}

	if err := d.messageRepo.Create(ctx, msg); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateMessageResponse{Message: model.ConvertMessage(msg, author.Name)}, nil
}

func (d *messageDomain) Get(
	ctx context.Context, req *model.GetMessageRequest,
) (*model.GetMessageResponse, error) {
	msg, err := d.messageRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found message")
		}

		xcontext.Logger(ctx).Errorf("Cannot get message: %v", err)
		return nil, errorx.Unknown
	}

	author, err := d.userRepo.GetByID(ctx, msg.AuthorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get author: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMessageResponse{Message: model.ConvertMessage(msg, author.Name)}, nil
}

func (d *messageDomain) Delete(
	ctx context.Context, req *model.DeleteMessageRequest,
) (*model.DeleteMessageResponse, error) {
	msg, err := d.messageRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found message")
		}

		xcontext.Logger(ctx).Errorf("Cannot get message: %v", err)
		return nil, errorx.Unknown
	}

	requester := xcontext.RequestUserID(ctx)
	if msg.AuthorID != requester {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete this message")
	}

	owner, err := d.userRepo.GetByID(ctx, requester)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get owner: %v", err)
		return nil, errorx.Unknown
	}

	// The pin reference is cleared in the same transaction as the delete, so a
	// failure cannot leave the owner pinning a removed message.
	err = xcontext.DB(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := xcontext.WithDB(ctx, tx)
		if err := d.messageRepo.DeleteByID(txCtx, msg.ID); err != nil {
			return err
		}

		if owner.PinnedMessageID.Valid && owner.PinnedMessageID.Int64 == msg.ID {
			if err := d.userRepo.UpdatePinnedMessage(txCtx, owner.ID, sql.NullInt64{}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete message: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteMessageResponse{ID: msg.ID}, nil
}

func (d *messageDomain) Pin(
	ctx context.Context, req *model.PinMessageRequest,
) (*model.PinMessageResponse, error) {
	msg, err := d.messageRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found message")
		}

		xcontext.Logger(ctx).Errorf("Cannot get message: %v", err)
		return nil, errorx.Unknown
	}

	requester := xcontext.RequestUserID(ctx)
	if msg.AuthorID != requester {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can pin this message")
	}

	pin := sql.NullInt64{Int64: msg.ID, Valid: true}
	if err := d.userRepo.UpdatePinnedMessage(ctx, requester, pin); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update pinned message: %v", err)
		return nil, errorx.Unknown
	}

	return &model.PinMessageResponse{}, nil
}

func (d *messageDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	offset, limit := checkPagination(ctx, req.Offset, req.Limit)

	userID := xcontext.RequestUserID(ctx)
	followings, err := d.followerRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followings: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{userID}
	for _, f := range followings {
		authorIDs = append(authorIDs, f.TargetID)
	}

	messages, err := d.messageRepo.GetFeed(ctx, authorIDs, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := d.convertMessages(ctx, messages)
	if err != nil {
		return nil, err
	}

	return &model.GetFeedResponse{Messages: converted}, nil
}

func (d *messageDomain) GetUserMessages(
	ctx context.Context, req *model.GetUserMessagesRequest,
) (*model.GetUserMessagesResponse, error) {
	offset, limit := checkPagination(ctx, req.Offset, req.Limit)

	user, err := d.userRepo.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	messages, err := d.messageRepo.GetListByAuthorID(ctx, user.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get messages: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.Message{}
	for i := range messages {
		converted = append(converted, model.ConvertMessage(&messages[i], user.Name))
	}

	return &model.GetUserMessagesResponse{Messages: converted}, nil
}

func (d *messageDomain) Like(
	ctx context.Context, req *model.LikeMessageRequest,
) (*model.LikeMessageResponse, error) {
	if _, err := d.getMessage(ctx, req.ID); err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	_, err := d.likeRepo.Get(ctx, req.ID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You have liked this message")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get like record: %v", err)
		return nil, errorx.Unknown
	}

	like := &entity.Like{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		MessageID:     req.ID,
		UserID:        userID,
	}

	if err := d.likeRepo.Create(ctx, like); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.likeRepo.CountByMessageID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LikeMessageResponse{Likes: count}, nil
}

func (d *messageDomain) Unlike(
	ctx context.Context, req *model.UnlikeMessageRequest,
) (*model.UnlikeMessageResponse, error) {
	if _, err := d.getMessage(ctx, req.ID); err != nil {
		return nil, err
	}

	if err := d.likeRepo.Delete(ctx, req.ID, xcontext.RequestUserID(ctx)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete like: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.likeRepo.CountByMessageID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnlikeMessageResponse{Likes: count}, nil
}

func (d *messageDomain) Repost(
	ctx context.Context, req *model.RepostMessageRequest,
) (*model.RepostMessageResponse, error) {
	if _, err := d.getMessage(ctx, req.ID); err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	_, err := d.repostRepo.Get(ctx, req.ID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You have reposted this message")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get repost record: %v", err)
		return nil, errorx.Unknown
	}

	repost := &entity.Repost{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		MessageID:     req.ID,
		UserID:        userID,
	}

	if err := d.repostRepo.Create(ctx, repost); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create repost: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.repostRepo.CountByMessageID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count reposts: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RepostMessageResponse{Reposts: count}, nil
}

func (d *messageDomain) getMessage(ctx context.Context, id int64) (*entity.Message, error) {
	msg, err := d.messageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found message")
		}

		xcontext.Logger(ctx).Errorf("Cannot get message: %v", err)
		return nil, errorx.Unknown
	}

	return msg, nil
}

func (d *messageDomain) convertMessages(
	ctx context.Context, messages []entity.Message,
) ([]model.Message, error) {
	authorIDs := []string{}
	seen := map[string]bool{}
	for _, m := range messages {
		if !seen[m.AuthorID] {
			seen[m.AuthorID] = true
			authorIDs = append(authorIDs, m.AuthorID)
		}
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
		return nil, errorx.Unknown
	}

	nameByID := map[string]string{}
	for _, a := range authors {
		nameByID[a.ID] = a.Name
	}

	converted := []model.Message{}
	for i := range messages {
		converted = append(converted, model.ConvertMessage(&messages[i], nameByID[messages[i].AuthorID]))
	}

	return converted, nil
}
