package service_test

import (
	"context"
	"testing"

	"github.com/qora-app/qora-server/internal/service"
	"github.com/qora-app/qora-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ctx := context.Background()

	t.Run("creates user and issues tokens", func(t *testing.T) {
		ts.DB.Truncate(t)

		result, err := ts.Services.Auth.Register(ctx, service.RegisterInput{
			DisplayName: "collector",
			Password:    "password123",
		})
		require.NoError(t, err)

		assert.Equal(t, "collector", result.User.DisplayName)
		assert.False(t, result.User.IsAdmin)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)

		claims, err := ts.Services.Auth.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID.String(), (*claims)["sub"])
	})

	t.Run("rejects duplicate display name", func(t *testing.T) {
		ts.DB.Truncate(t)

		_, err := ts.Services.Auth.Register(ctx, service.RegisterInput{
			DisplayName: "collector",
			Password:    "password123",
		})
		require.NoError(t, err)

		_, err = ts.Services.Auth.Register(ctx, service.RegisterInput{
			DisplayName: "collector",
			Password:    "different456",
		})
		assert.ErrorIs(t, err, service.ErrDisplayNameExists)
	})
}

func TestLogin(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ctx := context.Background()

	t.Run("authenticates with correct credentials", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().WithDisplayName("collector").WithPassword("password123").Build(t)

		result, err := ts.Services.Auth.Login(ctx, service.LoginInput{
			DisplayName: "collector",
			Password:    "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		ts.DB.Truncate(t)
		ts.NewUser().WithDisplayName("collector").WithPassword("password123").Build(t)

		_, err := ts.Services.Auth.Login(ctx, service.LoginInput{
			DisplayName: "collector",
			Password:    "wrong",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		ts.DB.Truncate(t)

		_, err := ts.Services.Auth.Login(ctx, service.LoginInput{
			DisplayName: "nobody",
			Password:    "password123",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestLogout(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ctx := context.Background()

	ts.DB.Truncate(t)
	user, _ := ts.NewUser().BuildAndAuthenticate(t)

	_, err := ts.Repos.Session.GetByUserID(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, ts.Services.Auth.Logout(ctx, user.ID))

	_, err = ts.Repos.Session.GetByUserID(ctx, user.ID)
	assert.Error(t, err)
}
