package domain

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ripple-lab/backend/internal/entity"
	"github.com/ripple-lab/backend/internal/model"
	"github.com/ripple-lab/backend/internal/repository"
	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type ConversationDomain interface {
	Create(context.Context, *model.CreateConversationRequest) (*model.CreateConversationResponse, error)
	GetMyList(context.Context, *model.GetMyConversationsRequest) (*model.GetMyConversationsResponse, error)
	CreateMessage(context.Context, *model.CreateConversationMessageRequest) (*model.CreateConversationMessageResponse, error)
	GetMessages(context.Context, *model.GetConversationMessagesRequest) (*model.GetConversationMessagesResponse, error)
}

type conversationDomain struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
}

func NewConversationDomain(
	conversationRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
) *conversationDomain {
	return &conversationDomain{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
	}
}

func (d *conversationDomain) Create(
	ctx context.Context, req *model.CreateConversationRequest,
) (*model.CreateConversationResponse, error) {
	if len(req.MemberNames) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Require at least another member")
	}

	userID := xcontext.RequestUserID(ctx)
	memberIDs := []string{userID}
	for _, name := range req.MemberNames {
		member, err := d.userRepo.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found user %s", name)
			}

			xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
			return nil, errorx.Unknown
		}

		if !slices.Contains(memberIDs, member.ID) {
			memberIDs = append(memberIDs, member.ID)
		}
	}

	if len(memberIDs) < 2 {
		return nil, errorx.New(errorx.BadRequest, "Require at least another member")
	}

	conversation := &entity.Conversation{Base: entity.Base{ID: uuid.NewString()}}
	members := []entity.ConversationMember{}
	for _, id := range memberIDs {
		members = append(members, entity.ConversationMember{
			Base:           entity.Base{ID: uuid.NewString()},
			ConversationID: conversation.ID,
			UserID:         id,
		})
	}

	if err := d.conversationRepo.Create(ctx, conversation, members); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create conversation: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateConversationResponse{
		Conversation: model.ConvertConversation(conversation, members),
	}, nil
}

func (d *conversationDomain) GetMyList(
	ctx context.Context, req *model.GetMyConversationsRequest,
) (*model.GetMyConversationsResponse, error) {
	conversations, err := d.conversationRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get conversations: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.Conversation{}
	for i := range conversations {
		members, err := d.conversationRepo.GetMembers(ctx, conversations[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
			return nil, errorx.Unknown
		}

		converted = append(converted, model.ConvertConversation(&conversations[i], members))
	}

	return &model.GetMyConversationsResponse{Conversations: converted}, nil
}

func (d *conversationDomain) CreateMessage(
	ctx context.Context, req *model.CreateConversationMessageRequest,
) (*model.CreateConversationMessageResponse, error) {
	length := utf8.RuneCountInString(req.Content)
	if length < entity.MinMessageLength || length > entity.MaxMessageLength {
		return nil, errorx.New(errorx.BadRequest,
			"Message must be between %d and %d characters",
			entity.MinMessageLength, entity.MaxMessageLength)
	}

	conversation, err := d.conversationRepo.GetByID(ctx, req.ConversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found conversation")
		}

		xcontext.Logger(ctx).Errorf("Cannot get conversation: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.verifyMembership(ctx, conversation.ID, userID); err != nil {
		return nil, err
	}

	msg := &entity.ConversationMessage{
		SnowFlakeBase:  entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		ConversationID: conversation.ID,
		AuthorID:       userID,
		Content:        req.Content,
	}

	if err := d.conversationRepo.CreateMessage(ctx, msg); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create conversation message: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.conversationRepo.UpdateLastMessageByID(ctx, conversation.ID, msg.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update last message of conversation: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateConversationMessageResponse{
		Message: model.ConvertConversationMessage(msg),
	}, nil
}

func (d *conversationDomain) GetMessages(
	ctx context.Context, req *model.GetConversationMessagesRequest,
) (*model.GetConversationMessagesResponse, error) {
	offset, limit := checkPagination(ctx, req.Offset, req.Limit)

	if _, err := d.conversationRepo.GetByID(ctx, req.ConversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found conversation")
		}

		xcontext.Logger(ctx).Errorf("Cannot get conversation: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.verifyMembership(ctx, req.ConversationID, userID); err != nil {
		return nil, err
	}

	messages, err := d.conversationRepo.GetMessages(ctx, req.ConversationID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get conversation messages: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.ConversationMessage{}
	for i := range messages {
		converted = append(converted, model.ConvertConversationMessage(&messages[i]))
	}

	return &model.GetConversationMessagesResponse{Messages: converted}, nil
}

func (d *conversationDomain) verifyMembership(
	ctx context.Context, conversationID, userID string,
) error {
	members, err := d.conversationRepo.GetMembers(ctx, conversationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return errorx.Unknown
	}

	for _, m := range members {
		if m.UserID == userID {
			return nil
		}
	}

	return errorx.New(errorx.PermissionDenied, "You are not a member of this conversation")
}
