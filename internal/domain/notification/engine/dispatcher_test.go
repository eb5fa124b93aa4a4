package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ripple-lab/backend/internal/domain"
	"github.com/ripple-lab/backend/internal/domain/notification/event"
	"github.com/ripple-lab/backend/internal/repository"
	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDispatcher() (*Registry, *Dispatcher) {
	registry := NewRegistry()
	userRepo := repository.NewUserRepository()
	messageRepo := repository.NewMessageRepository()
	followerRepo := repository.NewFollowerRepository()
	likeRepo := repository.NewLikeRepository()
	repostRepo := repository.NewRepostRepository()
	conversationRepo := repository.NewConversationRepository()

	messageDomain := domain.NewMessageDomain(
		messageRepo, userRepo, followerRepo, likeRepo, repostRepo)
	conversationDomain := domain.NewConversationDomain(conversationRepo, userRepo)

	dispatcher := NewDispatcher(
		registry,
		messageDomain,
		conversationDomain,
		messageRepo,
		userRepo,
		conversationRepo,
		&testutil.MockRedisClient{},
	)

	return registry, dispatcher
}

func newAuthorizedSession(
	ctx context.Context, registry *Registry, userID, path string,
) *Session {
	session := NewSession()
	registry.Register(session)
	registry.Authorize(ctx, session.ID(), userID)
	registry.SetContext(session.ID(), ParseContext(path))
	return session
}

func emit(
	t *testing.T, ctx context.Context,
	dispatcher *Dispatcher, session *Session, op string, data any,
) {
	b, err := json.Marshal(data)
	require.NoError(t, err)

	raw, err := json.Marshal(event.ClientEvent{Op: op, Data: b})
	require.NoError(t, err)

	dispatcher.Dispatch(ctx, session, raw)
}

func requireReceived(t *testing.T, session *Session, op string) *event.EventRequest {
	select {
	case ev, ok := <-session.C:
		require.True(t, ok, "session is closed")
		require.Equal(t, op, ev.Op)
		return ev
	default:
		require.FailNow(t, "no event received", "expected op %q", op)
		return nil
	}
}

func requireNothing(t *testing.T, session *Session) {
	select {
	case ev, ok := <-session.C:
		if ok {
			require.FailNow(t, "unexpected event", "op %q", ev.Op)
		}
	default:
	}
}

func TestDispatcherAuthorizeEvent(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	session := NewSession()
	registry.Register(session)

	emit(t, ctx, dispatcher, session, event.AuthorizeOp,
		event.AuthorizeEvent{UserID: testutil.User1.ID})

	sessions := registry.SessionsFor(testutil.User1.ID)
	require.Len(t, sessions, 1)
	require.Equal(t, session.ID(), sessions[0].ID())
	requireNothing(t, session)
}

func TestDispatcherNavigateEvent(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	session := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")

	emit(t, ctx, dispatcher, session, event.NavigateOp,
		event.NavigateEvent{Path: "/profile/bob"})

	require.Equal(t,
		PageContext{Kind: PageProfile, Profile: "bob"},
		registry.ContextOf(session.ID()))
}

func TestDispatcherNewMessageFanOut(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	// User1 posts from its own feed with two open sessions there.
	feed1 := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")
	feed2 := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")

	// User2 is looking at the author's profile, so it is eligible too.
	profileViewer := newAuthorizedSession(ctx, registry, testutil.User2.ID, "/profile/alice")

	// Neither another feed nor another profile should hear about it.
	otherFeed := newAuthorizedSession(ctx, registry, testutil.User2.ID, "/")
	otherProfile := newAuthorizedSession(ctx, registry, testutil.User3.ID, "/profile/bob")

	emit(t, ctx, dispatcher, feed1, event.NewMessageOp,
		event.NewMessageEvent{Path: "/", MessageID: testutil.Message1.ID})

	for _, session := range []*Session{feed1, feed2, profileViewer} {
		ev := requireReceived(t, session, event.NewMessageOp)
		msg, ok := ev.Data.(*event.MessageCreatedEvent)
		require.True(t, ok)
		require.Equal(t, testutil.Message1.ID, msg.ID)
		require.Equal(t, testutil.User1.Name, msg.AuthorName)
		requireNothing(t, session)
	}

	requireNothing(t, otherFeed)
	requireNothing(t, otherProfile)
}

func TestDispatcherNewMessageNotFound(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	session := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")

	emit(t, ctx, dispatcher, session, event.NewMessageOp,
		event.NewMessageEvent{Path: "/", MessageID: 999})

	ev := requireReceived(t, session, event.ErrorOp)
	errEv, ok := ev.Data.(*event.ErrorEvent)
	require.True(t, ok)
	require.Equal(t, errorx.NotFound, errEv.Code)
}

func TestDispatcherDeleteMessage(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	owner := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")
	profileViewer := newAuthorizedSession(ctx, registry, testutil.User2.ID, "/profile/alice")

	emit(t, ctx, dispatcher, owner, event.DeleteMessageOp,
		event.DeleteMessageEvent{Path: "/", MessageID: testutil.Message1.ID})

	for _, session := range []*Session{owner, profileViewer} {
		ev := requireReceived(t, session, event.DeleteMessageOp)
		deleted, ok := ev.Data.(*event.MessageDeletedEvent)
		require.True(t, ok)
		require.Equal(t, testutil.Message1.ID, deleted.MessageID)
	}

	_, err := repository.NewMessageRepository().GetByID(ctx, testutil.Message1.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDispatcherDeleteMessageOwnership(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	owner := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")
	intruder := newAuthorizedSession(ctx, registry, testutil.User2.ID, "/profile/alice")

	emit(t, ctx, dispatcher, intruder, event.DeleteMessageOp,
		event.DeleteMessageEvent{Path: "/profile/alice", MessageID: testutil.Message1.ID})

	// Only the acting session hears about the failure, nothing is fanned out.
	ev := requireReceived(t, intruder, event.ErrorOp)
	errEv, ok := ev.Data.(*event.ErrorEvent)
	require.True(t, ok)
	require.Equal(t, errorx.PermissionDenied, errEv.Code)
	requireNothing(t, owner)

	_, err := repository.NewMessageRepository().GetByID(ctx, testutil.Message1.ID)
	require.NoError(t, err)
}

func TestDispatcherPrivateMessage(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	// Conversation1 members are User1 and User2.
	sender := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")
	senderOtherTab := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/settings")
	recipient := newAuthorizedSession(ctx, registry, testutil.User2.ID, "/profile/carol")
	bystander := newAuthorizedSession(ctx, registry, testutil.User3.ID, "/")

	emit(t, ctx, dispatcher, sender, event.NewPrivateMessageOp,
		event.NewPrivateMessageEvent{
			ConversationID: testutil.Conversation1.ID,
			UserID:         testutil.User1.ID,
			Data:           "hi bob",
		})

	for _, session := range []*Session{sender, senderOtherTab, recipient} {
		ev := requireReceived(t, session, event.NewPrivateMessageOp)
		msg, ok := ev.Data.(*event.ConversationMessageCreatedEvent)
		require.True(t, ok)
		require.Equal(t, testutil.Conversation1.ID, msg.ConversationID)
		require.Equal(t, testutil.User1.ID, msg.AuthorID)
		require.Equal(t, "hi bob", msg.Content)
		requireNothing(t, session)
	}

	requireNothing(t, bystander)
}

func TestDispatcherPrivateMessageNonMember(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	member := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")
	outsider := newAuthorizedSession(ctx, registry, testutil.User3.ID, "/")

	emit(t, ctx, dispatcher, outsider, event.NewPrivateMessageOp,
		event.NewPrivateMessageEvent{
			ConversationID: testutil.Conversation1.ID,
			Data:           "let me in",
		})

	ev := requireReceived(t, outsider, event.ErrorOp)
	errEv, ok := ev.Data.(*event.ErrorEvent)
	require.True(t, ok)
	require.Equal(t, errorx.PermissionDenied, errEv.Code)
	requireNothing(t, member)
}

func TestDispatcherRequiresAuthorize(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	session := NewSession()
	registry.Register(session)

	emit(t, ctx, dispatcher, session, event.NewPrivateMessageOp,
		event.NewPrivateMessageEvent{
			ConversationID: testutil.Conversation1.ID,
			Data:           "hello",
		})

	ev := requireReceived(t, session, event.ErrorOp)
	errEv, ok := ev.Data.(*event.ErrorEvent)
	require.True(t, ok)
	require.Equal(t, errorx.Unauthenticated, errEv.Code)
}

func TestDispatcherUnknownOp(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	session := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")

	dispatcher.Dispatch(ctx, session, []byte(`{"o": "dance", "d": {}}`))

	ev := requireReceived(t, session, event.ErrorOp)
	errEv, ok := ev.Data.(*event.ErrorEvent)
	require.True(t, ok)
	require.Equal(t, errorx.BadRequest, errEv.Code)
}

func TestDispatcherDisconnectCleanup(t *testing.T) {
	ctx := testutil.MockContext()
	registry, dispatcher := newTestDispatcher()

	gone := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")
	alive := newAuthorizedSession(ctx, registry, testutil.User1.ID, "/")

	registry.Unregister(gone.ID())

	emit(t, ctx, dispatcher, alive, event.NewMessageOp,
		event.NewMessageEvent{Path: "/", MessageID: testutil.Message1.ID})

	requireReceived(t, alive, event.NewMessageOp)
	requireNothing(t, gone)
}
