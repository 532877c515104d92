package service

import (
	"context"
	"errors"

	"github.com/iliyamo/user-auth-service/internal/apperr"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// AuthService orchestrates login, logout, session refresh, password
// reset and email verification on top of the user store and the token
// service. The refresh/reset/verify flows intentionally collapse every
// sub-failure into one generic authentication error: which check failed
// (bad signature, expired, revoked, missing owner) must not be
// observable, or the endpoint becomes a token-existence oracle.
type AuthService struct {
	users  UserStore
	tokens TokenStore
	issuer *TokenService
}

func NewAuthService(users UserStore, tokens TokenStore, issuer *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens, issuer: issuer}
}

// Login checks the credentials and returns the user with the password
// hash stripped. An unknown email and a wrong password produce the
// identical error, so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.User, error) {
	incorrect := apperr.Authentication("Incorrect email or password")

	user, err := s.users.GetByEmailWithPassword(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, incorrect
		}
		return model.User{}, apperr.Storage(err)
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return model.User{}, incorrect
	}
	return user.Sanitized(), nil
}

// Logout deletes the presented refresh token. The matching access token
// stays valid until its own short expiry; logout only stops future
// refreshes. An absent or blacklisted token is NotFound.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	record, err := s.tokens.Find(ctx, refreshToken, model.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Not found")
		}
		return apperr.Storage(err)
	}
	if err := s.tokens.Delete(ctx, record.Value, model.TokenTypeRefresh); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// RefreshAuth rotates a refresh token: verify it, load its owner, delete
// it (single use) and issue a fresh session pair. Any failure along the
// way, storage included, collapses to "Please authenticate".
func (s *AuthService) RefreshAuth(ctx context.Context, refreshToken string) (AuthTokens, error) {
	rejected := apperr.Authentication("Please authenticate")

	record, err := s.issuer.VerifyToken(ctx, refreshToken, model.TokenTypeRefresh)
	if err != nil {
		return AuthTokens{}, rejected
	}
	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		return AuthTokens{}, rejected
	}
	if err := s.tokens.Delete(ctx, record.Value, model.TokenTypeRefresh); err != nil {
		return AuthTokens{}, rejected
	}
	pair, err := s.issuer.GenerateAuthTokens(ctx, user)
	if err != nil {
		return AuthTokens{}, rejected
	}
	return pair, nil
}

// ResetPassword consumes a reset token: verify, re-hash and store the
// new password, then delete every reset token the user holds, not just
// the one presented. Failures collapse to "Password reset failed".
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	failed := apperr.Authentication("Password reset failed")

	record, err := s.issuer.VerifyToken(ctx, resetToken, model.TokenTypeResetPassword)
	if err != nil {
		return failed
	}
	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		return failed
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return failed
	}
	user.PasswordHash = hash
	if _, err := s.users.Update(ctx, user); err != nil {
		return failed
	}
	if err := s.tokens.DeleteAllForUser(ctx, user.ID, model.TokenTypeResetPassword); err != nil {
		return failed
	}
	return nil
}

// VerifyEmail consumes a verification token: verify, delete every
// verify token for the user, then mark the address confirmed. Failures
// collapse to "Email verification failed".
func (s *AuthService) VerifyEmail(ctx context.Context, verifyToken string) error {
	failed := apperr.Authentication("Email verification failed")

	record, err := s.issuer.VerifyToken(ctx, verifyToken, model.TokenTypeVerifyEmail)
	if err != nil {
		return failed
	}
	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		return failed
	}
	if err := s.tokens.DeleteAllForUser(ctx, user.ID, model.TokenTypeVerifyEmail); err != nil {
		return failed
	}
	user.IsEmailVerified = true
	if _, err := s.users.Update(ctx, user); err != nil {
		return failed
	}
	return nil
}
