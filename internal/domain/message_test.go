package domain

import (
	"strings"
	"testing"

	"github.com/ripple-lab/backend/internal/model"
	"github.com/ripple-lab/backend/internal/repository"
	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestMessageDomain() MessageDomain {
	return NewMessageDomain(
		repository.NewMessageRepository(),
		repository.NewUserRepository(),
		repository.NewFollowerRepository(),
		repository.NewLikeRepository(),
		repository.NewRepostRepository(),
	)
}

func TestMessageDomainCreate(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	messageDomain := newTestMessageDomain()

	resp, err := messageDomain.Create(ctx, &model.CreateMessageRequest{Content: "a fresh post"})
	require.NoError(t, err)
	require.NotZero(t, resp.Message.ID)
	require.Equal(t, "alice", resp.Message.AuthorName)
	require.NotEmpty(t, resp.Message.CreatedAt)
}

func TestMessageDomainCreateLengthBounds(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	messageDomain := newTestMessageDomain()

	// Length is counted in runes, not bytes.
	_, err := messageDomain.Create(ctx, &model.CreateMessageRequest{
		Content: strings.Repeat("é", 280),
	})
	require.NoError(t, err)

	for _, content := range []string{"", strings.Repeat("é", 281)} {
		_, err := messageDomain.Create(ctx, &model.CreateMessageRequest{Content: content})
		var errx errorx.Error
		require.ErrorAs(t, err, &errx)
		require.Equal(t, errorx.BadRequest, errx.Code)
	}
}

func TestMessageDomainDeleteOwnership(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User2.ID)
	messageDomain := newTestMessageDomain()

	_, err := messageDomain.Delete(ctx, &model.DeleteMessageRequest{ID: testutil.Message1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	_, err = repository.NewMessageRepository().GetByID(ctx, testutil.Message1.ID)
	require.NoError(t, err)
}

func TestMessageDomainDeleteClearsPin(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	messageDomain := newTestMessageDomain()

	_, err := messageDomain.Pin(ctx, &model.PinMessageRequest{ID: testutil.Message1.ID})
	require.NoError(t, err)

	_, err = messageDomain.Delete(ctx, &model.DeleteMessageRequest{ID: testutil.Message1.ID})
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.False(t, user.PinnedMessageID.Valid)
}

func TestMessageDomainPinOwnership(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User2.ID)
	messageDomain := newTestMessageDomain()

	_, err := messageDomain.Pin(ctx, &model.PinMessageRequest{ID: testutil.Message1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func TestMessageDomainGetFeed(t *testing.T) {
	// User2 follows User1, so the feed holds both authors in reverse id order.
	ctx := testutil.MockContextWithUserID(nil, testutil.User2.ID)
	messageDomain := newTestMessageDomain()

	resp, err := messageDomain.GetFeed(ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 2)
	require.Equal(t, testutil.Message2.ID, resp.Messages[0].ID)
	require.Equal(t, testutil.Message1.ID, resp.Messages[1].ID)
	require.Equal(t, "alice", resp.Messages[1].AuthorName)
}

func TestMessageDomainLikeUnlike(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User2.ID)
	messageDomain := newTestMessageDomain()

	resp, err := messageDomain.Like(ctx, &model.LikeMessageRequest{ID: testutil.Message1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Likes)

	_, err = messageDomain.Like(ctx, &model.LikeMessageRequest{ID: testutil.Message1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	unlikeResp, err := messageDomain.Unlike(ctx, &model.UnlikeMessageRequest{ID: testutil.Message1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), unlikeResp.Likes)
}

func TestMessageDomainRepost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User2.ID)
	messageDomain := newTestMessageDomain()

	resp, err := messageDomain.Repost(ctx, &model.RepostMessageRequest{ID: testutil.Message1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Reposts)

	_, err = messageDomain.Repost(ctx, &model.RepostMessageRequest{ID: testutil.Message1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}
