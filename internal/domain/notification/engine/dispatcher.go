package engine

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ripple-lab/backend/internal/domain"
	"github.com/ripple-lab/backend/internal/domain/notification/event"
	"github.com/ripple-lab/backend/internal/model"
	"github.com/ripple-lab/backend/internal/repository"
	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/xcontext"
	"github.com/ripple-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

const userCacheTTL = time.Minute

// Dispatcher routes client events to their handler, performs the associated
// write through the domain layer and fans the result out to every eligible
// session.
type Dispatcher struct {
	registry *Registry

	messageDomain      domain.MessageDomain
	conversationDomain domain.ConversationDomain
	messageRepo        repository.MessageRepository
	userRepo           repository.UserRepository
	conversationRepo   repository.ConversationRepository
	redisClient        xredis.Client
}

func NewDispatcher(
	registry *Registry,
	messageDomain domain.MessageDomain,
	conversationDomain domain.ConversationDomain,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	conversationRepo repository.ConversationRepository,
	redisClient xredis.Client,
) *Dispatcher {
	return &Dispatcher{
		registry:           registry,
		messageDomain:      messageDomain,
		conversationDomain: conversationDomain,
		messageRepo:        messageRepo,
		userRepo:           userRepo,
		conversationRepo:   conversationRepo,
		redisClient:        redisClient,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, session *Session, raw []byte) {
	var clientEvent event.ClientEvent
	if err := json.Unmarshal(raw, &clientEvent); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot unmarshal client event: %v", err)
		return
	}

	var err error
	switch clientEvent.Op {
	case event.AuthorizeOp:
		err = d.handleAuthorize(ctx, session, clientEvent.Data)
	case event.NavigateOp:
		err = d.handleNavigate(ctx, session, clientEvent.Data)
	case event.NewMessageOp:
		err = d.handleNewMessage(ctx, session, clientEvent.Data)
	case event.DeleteMessageOp:
		err = d.handleDeleteMessage(ctx, session, clientEvent.Data)
	case event.NewPrivateMessageOp:
		err = d.handleNewPrivateMessage(ctx, session, clientEvent.Data)
	default:
		err = errorx.New(errorx.BadRequest, "Unknown op %q", clientEvent.Op)
	}

	if err != nil {
		d.notifyError(ctx, session, err)
	}
}

// notifyError reports a failed dispatch back to the acting session only. The
// fan-out targets never see it.
func (d *Dispatcher) notifyError(ctx context.Context, session *Session, err error) {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	deliverErr := session.Deliver(event.New(&event.ErrorEvent{
		Code:    errx.Code,
		Message: errx.Message,
	}))
	if deliverErr != nil {
		xcontext.Logger(ctx).Debugf("Cannot deliver error to session %s: %v",
			session.ID(), deliverErr)
	}
}

func (d *Dispatcher) handleAuthorize(ctx context.Context, session *Session, data []byte) error {
	var ev event.AuthorizeEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid authorize event")
	}

	if ev.UserID == "" {
		return errorx.New(errorx.BadRequest, "Require an user id")
	}

	d.registry.Authorize(ctx, session.ID(), ev.UserID)
	return nil
}

func (d *Dispatcher) handleNavigate(ctx context.Context, session *Session, data []byte) error {
	var ev event.NavigateEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid navigate event")
	}

	d.registry.SetContext(session.ID(), ParseContext(ev.Path))
	return nil
}

func (d *Dispatcher) handleNewMessage(ctx context.Context, session *Session, data []byte) error {
	var ev event.NewMessageEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid new message event")
	}

	// The emitting client is on the page it just posted from.
	d.registry.SetContext(session.ID(), ParseContext(ev.Path))

	msg, err := d.messageRepo.GetByID(ctx, ev.MessageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found message")
		}

		xcontext.Logger(ctx).Errorf("Cannot get message: %v", err)
		return errorx.Unknown
	}

	author, err := d.getUser(ctx, msg.AuthorID)
	if err != nil {
		return err
	}

	created := event.MessageCreatedEvent(model.ConvertMessage(msg, author.Name))
	d.fanOutByContext(ctx, event.New(&created), msg.AuthorID, author.Name)
	return nil
}

func (d *Dispatcher) handleDeleteMessage(ctx context.Context, session *Session, data []byte) error {
	var ev event.DeleteMessageEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid delete message event")
	}

	d.registry.SetContext(session.ID(), ParseContext(ev.Path))

	userID := session.UserID()
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "Require authorize before emitting events")
	}

	ctx = xcontext.WithRequestUserID(ctx, userID)
	if _, err := d.messageDomain.Delete(ctx, &model.DeleteMessageRequest{ID: ev.MessageID}); err != nil {
		return err
	}

	author, err := d.getUser(ctx, userID)
	if err != nil {
		return err
	}

	deleted := event.MessageDeletedEvent{MessageID: ev.MessageID}
	d.fanOutByContext(ctx, event.New(&deleted), userID, author.Name)
	return nil
}

func (d *Dispatcher) handleNewPrivateMessage(ctx context.Context, session *Session, data []byte) error {
	var ev event.NewPrivateMessageEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid new private message event")
	}

	userID := session.UserID()
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "Require authorize before emitting events")
	}

	ctx = xcontext.WithRequestUserID(ctx, userID)
	resp, err := d.conversationDomain.CreateMessage(ctx, &model.CreateConversationMessageRequest{
		ConversationID: ev.ConversationID,
		Content:        ev.Data,
	})
	if err != nil {
		return err
	}

	others, err := d.otherParticipants(ctx, ev.ConversationID, userID)
	if err != nil {
		return err
	}

	// Echo to the sender's other sessions besides the recipients.
	targets := d.registry.SessionsFor(userID)
	for _, other := range others {
		targets = append(targets, d.registry.SessionsFor(other)...)
	}

	created := event.ConversationMessageCreatedEvent(resp.Message)
	evReq := event.New(&created)

	delivered := map[string]bool{}
	for _, target := range targets {
		if delivered[target.ID()] {
			continue
		}
		delivered[target.ID()] = true

		if err := target.Deliver(evReq); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot deliver to session %s: %v", target.ID(), err)
		}
	}

	return nil
}

// otherParticipants resolves every member of the conversation except the
// requester. The data model allows any number of members even if most
// conversations have exactly two.
func (d *Dispatcher) otherParticipants(
	ctx context.Context, conversationID, requesterID string,
) ([]string, error) {
	members, err := d.conversationRepo.GetMembers(ctx, conversationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return nil, errorx.Unknown
	}

	others := []string{}
	for _, m := range members {
		if m.UserID != requesterID {
			others = append(others, m.UserID)
		}
	}

	if len(others) == 0 {
		return nil, errorx.New(errorx.NotFound, "Not found other participants")
	}

	return others, nil
}

// fanOutByContext delivers the event to every session whose page context
// matches the author of the message. A failure on one session never stops
// delivery to the others.
func (d *Dispatcher) fanOutByContext(
	ctx context.Context, ev *event.EventRequest, authorID, authorName string,
) {
	d.registry.Range(func(session *Session) bool {
		if !session.Context().Match(session.UserID(), authorID, authorName) {
			return true
		}

		if err := session.Deliver(ev); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot deliver to session %s: %v", session.ID(), err)
		}

		return true
	})
}

func (d *Dispatcher) getUser(ctx context.Context, userID string) (*model.User, error) {
	var cached model.User
	err := d.redisClient.GetObj(ctx, userCacheKey(userID), &cached)
	if err == nil {
		return &cached, nil
	}

	if !errors.Is(err, redis.Nil) {
		xcontext.Logger(ctx).Warnf("Cannot get user from cache: %v", err)
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	converted := model.ConvertUser(user)
	if err := d.redisClient.SetObj(ctx, userCacheKey(userID), converted, userCacheTTL); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache user: %v", err)
	}

	return &converted, nil
}

func userCacheKey(userID string) string {
	return "notification:user:" + userID
}
