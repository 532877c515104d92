package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-auth-service/internal/apperr"
	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

const testSecret = "unit-test-secret"

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      testSecret,
		AccessTTLMin:   30,
		RefreshTTLDays: 30,
		ResetTTLMin:    10,
		VerifyTTLMin:   10,
	}
}

type fixture struct {
	users  *fakeUserStore
	tokens *fakeTokenStore
	issuer *TokenService
	auth   *AuthService
	dir    *UserService
}

func newFixture() *fixture {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	issuer := NewTokenService(testConfig(), tokens, users)
	return &fixture{
		users:  users,
		tokens: tokens,
		issuer: issuer,
		auth:   NewAuthService(users, tokens, issuer),
		dir:    NewUserService(users),
	}
}

func (f *fixture) register(t *testing.T, name, email, password string) model.User {
	t.Helper()
	user, err := f.dir.Create(context.Background(), CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func TestLoginSuccessStripsPassword(t *testing.T) {
	f := newFixture()
	f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	user, err := f.auth.Login(context.Background(), "ada@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Empty(t, user.PasswordHash, "login must never return the hash")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture()
	f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	_, wrongPass := f.auth.Login(context.Background(), "ada@example.com", "not-the-password")
	_, unknownEmail := f.auth.Login(context.Background(), "nobody@example.com", "s3cret-pass")

	require.Error(t, wrongPass)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(wrongPass))
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(unknownEmail))
	assert.Equal(t, "Incorrect email or password", wrongPass.Error())
}

func TestGenerateAuthTokensPersistsOnlyRefresh(t *testing.T) {
	f := newFixture()
	user := f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	pair, err := f.issuer.GenerateAuthTokens(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access.Token)
	assert.NotEmpty(t, pair.Refresh.Token)
	assert.True(t, pair.Refresh.Expires.After(pair.Access.Expires))

	assert.Equal(t, 1, f.tokens.countByType(user.ID, model.TokenTypeRefresh))
	assert.Equal(t, 0, f.tokens.countByType(user.ID, model.TokenTypeAccess),
		"access tokens must never be persisted")
}

func TestRefreshRotationIsSingleUse(t *testing.T) {
	f := newFixture()
	user := f.register(t, "Ada", "ada@example.com", "s3cret-pass")
	pair, err := f.issuer.GenerateAuthTokens(context.Background(), user)
	require.NoError(t, err)

	fresh, err := f.auth.RefreshAuth(context.Background(), pair.Refresh.Token)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Refresh.Token, fresh.Refresh.Token)
	assert.Equal(t, 1, f.tokens.countByType(user.ID, model.TokenTypeRefresh),
		"old refresh token is deleted when the new one is issued")

	_, err = f.auth.RefreshAuth(context.Background(), pair.Refresh.Token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	assert.Equal(t, "Please authenticate", err.(*apperr.Error).Message)
}

func TestRefreshFailuresCollapseToOneError(t *testing.T) {
	f := newFixture()
	user := f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	// Signed with the right secret but never persisted.
	unsaved, err := utils.IssueToken(testSecret, user.ID, time.Now().UTC().Add(time.Hour), model.TokenTypeRefresh)
	require.NoError(t, err)

	// Persisted but expired at decode time.
	expired, err := utils.IssueToken(testSecret, user.ID, time.Now().UTC().Add(-time.Hour), model.TokenTypeRefresh)
	require.NoError(t, err)
	_, err = f.tokens.Save(context.Background(), expired, user.ID, time.Now().UTC().Add(-time.Hour), model.TokenTypeRefresh, false)
	require.NoError(t, err)

	// Wrong type: a reset token presented as a refresh token.
	reset, err := f.issuer.GenerateResetPasswordToken(context.Background(), user.Email)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":       "not-a-token",
		"not persisted": unsaved,
		"expired":       expired,
		"wrong type":    reset.Token,
	} {
		_, err := f.auth.RefreshAuth(context.Background(), token)
		require.Error(t, err, name)
		assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err), name)
		assert.Equal(t, "Please authenticate", err.(*apperr.Error).Message, name)
	}
}

func TestLogoutDeletesRefreshToken(t *testing.T) {
	f := newFixture()
	user := f.register(t, "Ada", "ada@example.com", "s3cret-pass")
	pair, err := f.issuer.GenerateAuthTokens(context.Background(), user)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(context.Background(), pair.Refresh.Token))
	assert.Equal(t, 0, f.tokens.countByType(user.ID, model.TokenTypeRefresh))

	// The token is gone, so a second logout (and any refresh) fails.
	err = f.auth.Logout(context.Background(), pair.Refresh.Token)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.auth.RefreshAuth(context.Background(), pair.Refresh.Token)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestLogoutUnknownTokenIsNotFound(t *testing.T) {
	f := newFixture()
	err := f.auth.Logout(context.Background(), "never-issued")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// Revocation itself is idempotent: deleting an absent row is fine.
	assert.NoError(t, f.tokens.Delete(context.Background(), "never-issued", model.TokenTypeRefresh))
	assert.NoError(t, f.tokens.DeleteAllForUser(context.Background(), 999, model.TokenTypeResetPassword))
}

func TestResetPasswordConsumesAllResetTokens(t *testing.T) {
	f := newFixture()
	user := f.register(t, "Ada", "ada@example.com", "old-password")

	// Two outstanding reset tokens; consuming one must delete both.
	first, err := f.issuer.GenerateResetPasswordToken(context.Background(), user.Email)
	require.NoError(t, err)
	_, err = f.issuer.GenerateResetPasswordToken(context.Background(), user.Email)
	require.NoError(t, err)
	require.Equal(t, 2, f.tokens.countByType(user.ID, model.TokenTypeResetPassword))

	require.NoError(t, f.auth.ResetPassword(context.Background(), first.Token, "new-password"))
	assert.Equal(t, 0, f.tokens.countByType(user.ID, model.TokenTypeResetPassword))

	_, err = f.auth.Login(context.Background(), user.Email, "old-password")
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	_, err = f.auth.Login(context.Background(), user.Email, "new-password")
	assert.NoError(t, err)
}

func TestResetPasswordFailuresCollapse(t *testing.T) {
	f := newFixture()
	user := f.register(t, "Ada", "ada@example.com", "old-password")

	expired, err := utils.IssueToken(testSecret, user.ID, time.Now().UTC().Add(-time.Minute), model.TokenTypeResetPassword)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage": "nope",
		"expired": expired,
	} {
		err := f.auth.ResetPassword(context.Background(), token, "new-password")
		require.Error(t, err, name)
		assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err), name)
		assert.Equal(t, "Password reset failed", err.(*apperr.Error).Message, name)
	}

	_, err = f.auth.Login(context.Background(), user.Email, "old-password")
	assert.NoError(t, err, "password unchanged after failed resets")
}

func TestGenerateResetPasswordTokenUnknownEmail(t *testing.T) {
	f := newFixture()
	_, err := f.issuer.GenerateResetPasswordToken(context.Background(), "nobody@example.com")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestVerifyEmailSetsFlagAndConsumesTokens(t *testing.T) {
	f := newFixture()
	user := f.register(t, "Ada", "ada@example.com", "s3cret-pass")
	require.False(t, user.IsEmailVerified)

	verify, err := f.issuer.GenerateVerifyEmailToken(context.Background(), user)
	require.NoError(t, err)
	_, err = f.issuer.GenerateVerifyEmailToken(context.Background(), user)
	require.NoError(t, err)

	require.NoError(t, f.auth.VerifyEmail(context.Background(), verify.Token))
	assert.Equal(t, 0, f.tokens.countByType(user.ID, model.TokenTypeVerifyEmail))

	got, err := f.dir.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsEmailVerified)

	// The consumed token cannot be replayed.
	err = f.auth.VerifyEmail(context.Background(), verify.Token)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	assert.Equal(t, "Email verification failed", err.(*apperr.Error).Message)
}
