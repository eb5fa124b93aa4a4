package domain

import (
	"testing"

	"github.com/ripple-lab/backend/internal/model"
	"github.com/ripple-lab/backend/internal/repository"
	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestConversationDomain() ConversationDomain {
	return NewConversationDomain(
		repository.NewConversationRepository(),
		repository.NewUserRepository(),
	)
}

func TestConversationDomainCreate(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	conversationDomain := newTestConversationDomain()

	resp, err := conversationDomain.Create(ctx, &model.CreateConversationRequest{
		MemberNames: []string{"carol"},
	})
	require.NoError(t, err)
	require.ElementsMatch(t,
		[]string{testutil.User1.ID, testutil.User3.ID},
		resp.Conversation.MemberIDs)

	_, err = conversationDomain.Create(ctx, &model.CreateConversationRequest{
		MemberNames: []string{"nobody"},
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	// A conversation with only the requester is rejected.
	_, err = conversationDomain.Create(ctx, &model.CreateConversationRequest{
		MemberNames: []string{"alice"},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func TestConversationDomainGetMyList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	conversationDomain := newTestConversationDomain()

	resp, err := conversationDomain.GetMyList(ctx, &model.GetMyConversationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Conversations, 1)
	require.Equal(t, testutil.Conversation1.ID, resp.Conversations[0].ID)

	outsiderCtx := testutil.MockContextWithUserID(nil, testutil.User3.ID)
	resp, err = conversationDomain.GetMyList(outsiderCtx, &model.GetMyConversationsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Conversations)
}

func TestConversationDomainCreateMessage(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	conversationDomain := newTestConversationDomain()

	resp, err := conversationDomain.CreateMessage(ctx, &model.CreateConversationMessageRequest{
		ConversationID: testutil.Conversation1.ID,
		Content:        "hello there",
	})
	require.NoError(t, err)
	require.NotZero(t, resp.Message.ID)
	require.Equal(t, testutil.User1.ID, resp.Message.AuthorID)

	conversation, err := repository.NewConversationRepository().
		GetByID(ctx, testutil.Conversation1.ID)
	require.NoError(t, err)
	require.Equal(t, resp.Message.ID, conversation.LastMessageID)
}

func TestConversationDomainCreateMessageNonMember(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User3.ID)
	conversationDomain := newTestConversationDomain()

	_, err := conversationDomain.CreateMessage(ctx, &model.CreateConversationMessageRequest{
		ConversationID: testutil.Conversation1.ID,
		Content:        "hello there",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	_, err = conversationDomain.CreateMessage(ctx, &model.CreateConversationMessageRequest{
		ConversationID: "unknown",
		Content:        "hello there",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func TestConversationDomainGetMessages(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	conversationDomain := newTestConversationDomain()

	for _, content := range []string{"first", "second"} {
		_, err := conversationDomain.CreateMessage(ctx, &model.CreateConversationMessageRequest{
			ConversationID: testutil.Conversation1.ID,
			Content:        content,
		})
		require.NoError(t, err)
	}

	resp, err := conversationDomain.GetMessages(ctx, &model.GetConversationMessagesRequest{
		ConversationID: testutil.Conversation1.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 2)
	require.Equal(t, "second", resp.Messages[0].Content)
	require.Equal(t, "first", resp.Messages[1].Content)

	outsiderCtx := testutil.MockContextWithUserID(nil, testutil.User3.ID)
	_, err = conversationDomain.GetMessages(outsiderCtx, &model.GetConversationMessagesRequest{
		ConversationID: testutil.Conversation1.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}
