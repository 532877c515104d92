// Package service holds the business core: the authentication state
// machine, token lifecycle and user directory. Services receive their
// store handles through constructors (no ambient globals) and translate
// repository and codec failures into the apperr taxonomy before anything
// reaches a caller.
package service

import (
	"context"
	"time"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/repository"
)

// UserStore is the slice of the user repository the services consume.
// *repository.UserRepo satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (model.User, error)
	IsEmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error)
	Update(ctx context.Context, u model.User) (model.User, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter repository.UserFilter, opts repository.PageOptions) (repository.UserPage, error)
}

// TokenStore is the persisted-token surface: save, exact-match lookup of
// unrevoked rows, and idempotent revocation by deletion.
type TokenStore interface {
	Save(ctx context.Context, value string, userID uint64, expires time.Time, tokenType model.TokenType, blackListed bool) (model.Token, error)
	Find(ctx context.Context, value string, tokenType model.TokenType) (model.Token, error)
	Delete(ctx context.Context, value string, tokenType model.TokenType) error
	DeleteAllForUser(ctx context.Context, userID uint64, tokenType model.TokenType) error
}
