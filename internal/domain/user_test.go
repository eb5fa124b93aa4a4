package domain

import (
	"testing"

	"github.com/ripple-lab/backend/internal/model"
	"github.com/ripple-lab/backend/internal/repository"
	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestUserDomain() UserDomain {
	return NewUserDomain(repository.NewUserRepository(), repository.NewFollowerRepository())
}

func TestUserDomainGetUser(t *testing.T) {
	ctx := testutil.MockContext()
	userDomain := newTestUserDomain()

	resp, err := userDomain.GetUser(ctx, &model.GetUserRequest{Name: "Alice"})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.User.ID)

	_, err = userDomain.GetUser(ctx, &model.GetUserRequest{Name: "nobody"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func TestUserDomainGetMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User2.ID)
	userDomain := newTestUserDomain()

	resp, err := userDomain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, "bob", resp.User.Name)
}

func TestUserDomainUpdateMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	userDomain := newTestUserDomain()

	resp, err := userDomain.UpdateMe(ctx, &model.UpdateMeRequest{Bio: "gopher"})
	require.NoError(t, err)
	require.Equal(t, "gopher", resp.User.Bio)

	// Empty fields are kept, not blanked.
	require.Equal(t, testutil.User1.DisplayName, resp.User.DisplayName)
}

func TestUserDomainFollow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	userDomain := newTestUserDomain()

	_, err := userDomain.FollowUser(ctx, &model.FollowUserRequest{Name: "bob"})
	require.NoError(t, err)

	_, err = userDomain.FollowUser(ctx, &model.FollowUserRequest{Name: "bob"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	_, err = userDomain.FollowUser(ctx, &model.FollowUserRequest{Name: "alice"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = userDomain.UnfollowUser(ctx, &model.UnfollowUserRequest{Name: "bob"})
	require.NoError(t, err)

	followings, err := repository.NewFollowerRepository().GetListByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Empty(t, followings)
}
