package services

import (
	"context"
	"testing"
	"time"

	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFailures(t *testing.T) {
	svcs, store := newTestServices(t)
	testutil.CreateAdmin(t, store, "Admin", "admin@example.com")

	tests := []struct {
		name string
		req  dto.LoginRequest
		want error
	}{
		{"unknown email", dto.LoginRequest{Email: "nobody@example.com", Password: "password"}, apperrors.ErrInvalidCredentials},
		{"wrong password", dto.LoginRequest{Email: "admin@example.com", Password: "wrong"}, apperrors.ErrInvalidCredentials},
		{"missing fields", dto.LoginRequest{}, apperrors.ErrValidationFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := svcs.Auth.Login(context.Background(), &req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 0, store.Counts()["tokens"])
}

func TestLoginAuthenticateLogout(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	admin := testutil.CreateAdmin(t, store, "Admin", "admin@example.com")

	resp, err := svcs.Auth.Login(ctx, &dto.LoginRequest{Email: "ADMIN@example.com", Password: testutil.TestPassword})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, admin.ID, resp.User.ID)
	assert.Nil(t, resp.User.StudentID)

	claims, err := svcs.Auth.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	require.NotNil(t, store.Token(claims.ID))

	me, err := svcs.Auth.Me(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", me.Email)

	require.NoError(t, svcs.Auth.Logout(ctx, claims.ID))
	_, err = svcs.Auth.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	require.NoError(t, svcs.Auth.Logout(ctx, claims.ID))
}

func TestAuthenticateRejectsUntrackedAndGarbage(t *testing.T) {
	svcs, store := newTestServices(t)
	admin := testutil.CreateAdmin(t, store, "Admin", "admin@example.com")

	issued, err := testutil.JWTService().GenerateAccessToken(admin.ID, admin.Email, string(admin.Role))
	require.NoError(t, err)

	_, err = svcs.Auth.Authenticate(context.Background(), issued.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = svcs.Auth.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestMeForDeletedUser(t *testing.T) {
	svcs, _ := newTestServices(t)
	_, err := svcs.Auth.Me(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestCleanupExpiredTokens(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	testutil.CreateAdmin(t, store, "Admin", "admin@example.com")

	first, err := svcs.Auth.Login(ctx, &dto.LoginRequest{Email: "admin@example.com", Password: testutil.TestPassword})
	require.NoError(t, err)
	_, err = svcs.Auth.Login(ctx, &dto.LoginRequest{Email: "admin@example.com", Password: testutil.TestPassword})
	require.NoError(t, err)

	claims, err := svcs.Auth.Authenticate(ctx, first.AccessToken)
	require.NoError(t, err)
	require.NoError(t, svcs.Auth.Logout(ctx, claims.ID))

	svcs.Auth.now = func() time.Time { return time.Now().Add(time.Minute) }
	removed, err := svcs.Auth.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed, "revoked token")
	assert.Equal(t, 1, store.Counts()["tokens"])

	svcs.Auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	removed, err = svcs.Auth.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed, "expired token")
	assert.Equal(t, 0, store.Counts()["tokens"])
}
