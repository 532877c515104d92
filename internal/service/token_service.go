package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/user-auth-service/internal/apperr"
	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// errTokenRejected is the internal "this token is no good" signal shared
// by every verification sub-check. Callers in the auth service collapse
// it (and anything else) into a single generic failure, so which check
// tripped is never observable from outside.
var errTokenRejected = errors.New("token rejected")

// TokenDetail pairs a signed token string with its expiry for responses.
type TokenDetail struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AuthTokens is the session pair issued on register, login and refresh.
type AuthTokens struct {
	Access  TokenDetail `json:"access"`
	Refresh TokenDetail `json:"refresh"`
}

// TokenService owns the token lifecycle: signing, persistence of the
// non-access types, and verification against both the signature and the
// store.
type TokenService struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
	verifyTTL  time.Duration
	tokens     TokenStore
	users      UserStore
}

func NewTokenService(cfg config.Config, tokens TokenStore, users UserStore) *TokenService {
	return &TokenService{
		secret:     cfg.JWTSecret,
		accessTTL:  time.Duration(cfg.AccessTTLMin) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshTTLDays) * 24 * time.Hour,
		resetTTL:   time.Duration(cfg.ResetTTLMin) * time.Minute,
		verifyTTL:  time.Duration(cfg.VerifyTTLMin) * time.Minute,
		tokens:     tokens,
		users:      users,
	}
}

// GenerateAuthTokens issues a session pair for the user: a short-lived
// access token that exists only as a signature, and a long-lived refresh
// token that is signed and persisted so it can be rotated and revoked.
func (s *TokenService) GenerateAuthTokens(ctx context.Context, user model.User) (AuthTokens, error) {
	accessExp := time.Now().UTC().Add(s.accessTTL)
	access, err := utils.IssueToken(s.secret, user.ID, accessExp, model.TokenTypeAccess)
	if err != nil {
		return AuthTokens{}, apperr.Storage(err)
	}

	refreshExp := time.Now().UTC().Add(s.refreshTTL)
	refresh, err := utils.IssueToken(s.secret, user.ID, refreshExp, model.TokenTypeRefresh)
	if err != nil {
		return AuthTokens{}, apperr.Storage(err)
	}
	if _, err := s.tokens.Save(ctx, refresh, user.ID, refreshExp, model.TokenTypeRefresh, false); err != nil {
		return AuthTokens{}, apperr.Storage(err)
	}

	return AuthTokens{
		Access:  TokenDetail{Token: access, Expires: accessExp},
		Refresh: TokenDetail{Token: refresh, Expires: refreshExp},
	}, nil
}

// GenerateResetPasswordToken issues and persists a reset token for the
// account holding email. Unlike the token-consuming flows this one does
// reveal absence: password reset is requested by email, and the caller
// legitimately needs to know no account matches.
func (s *TokenService) GenerateResetPasswordToken(ctx context.Context, email string) (TokenDetail, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return TokenDetail{}, apperr.NotFound("No users found with this email")
	}
	return s.issuePersisted(ctx, user.ID, s.resetTTL, model.TokenTypeResetPassword)
}

// GenerateVerifyEmailToken issues and persists a verification token for
// the user.
func (s *TokenService) GenerateVerifyEmailToken(ctx context.Context, user model.User) (TokenDetail, error) {
	return s.issuePersisted(ctx, user.ID, s.verifyTTL, model.TokenTypeVerifyEmail)
}

func (s *TokenService) issuePersisted(ctx context.Context, userID uint64, ttl time.Duration, tokenType model.TokenType) (TokenDetail, error) {
	exp := time.Now().UTC().Add(ttl)
	value, err := utils.IssueToken(s.secret, userID, exp, tokenType)
	if err != nil {
		return TokenDetail{}, apperr.Storage(err)
	}
	if _, err := s.tokens.Save(ctx, value, userID, exp, tokenType, false); err != nil {
		return TokenDetail{}, apperr.Storage(err)
	}
	return TokenDetail{Token: value, Expires: exp}, nil
}

// VerifyToken runs the full validity chain for a persisted token type:
// signature and expiry first (so an expired token never reaches the
// store), then the store lookup on (value, type, unblacklisted), then an
// owner match between the row and the signed subject. Every failure
// returns errTokenRejected; callers decide what that collapses into.
func (s *TokenService) VerifyToken(ctx context.Context, value string, tokenType model.TokenType) (model.Token, error) {
	payload, err := utils.DecodeToken(s.secret, value)
	if err != nil {
		return model.Token{}, errTokenRejected
	}
	if payload.Type != tokenType {
		return model.Token{}, errTokenRejected
	}
	record, err := s.tokens.Find(ctx, value, tokenType)
	if err != nil {
		return model.Token{}, errTokenRejected
	}
	if record.UserID != payload.UserID {
		return model.Token{}, errTokenRejected
	}
	return record, nil
}
