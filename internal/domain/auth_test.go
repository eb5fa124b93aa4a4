package domain

import (
	"testing"

	"github.com/ripple-lab/backend/internal/model"
	"github.com/ripple-lab/backend/internal/repository"
	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/testutil"
	"github.com/ripple-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestAuthDomainRegister(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain := NewAuthDomain(repository.NewUserRepository())

	resp, err := authDomain.Register(ctx, &model.RegisterRequest{
		Name:        "dave",
		DisplayName: "Dave",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.User.ID)
	require.Equal(t, "dave", resp.User.Name)

	var accessToken model.AccessToken
	err = xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &accessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, accessToken.ID)
}

func TestAuthDomainRegisterInvalidName(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain := NewAuthDomain(repository.NewUserRepository())

	for _, name := range []string{"", "ab", "has space", "way_too_long_for_a_username_here"} {
		_, err := authDomain.Register(ctx, &model.RegisterRequest{Name: name})
		var errx errorx.Error
		require.ErrorAs(t, err, &errx, "name %q", name)
		require.Equal(t, errorx.BadRequest, errx.Code)
	}
}

func TestAuthDomainRegisterTakenName(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain := NewAuthDomain(repository.NewUserRepository())

	_, err := authDomain.Register(ctx, &model.RegisterRequest{Name: "alice"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func TestAuthDomainLogin(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain := NewAuthDomain(repository.NewUserRepository())

	resp, err := authDomain.Login(ctx, &model.LoginRequest{Name: "alice"})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.User.ID)
	require.NotEmpty(t, resp.AccessToken)

	_, err = authDomain.Login(ctx, &model.LoginRequest{Name: "nobody"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}
