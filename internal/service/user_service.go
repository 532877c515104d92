package service

import (
	"context"
	"errors"

	"github.com/iliyamo/user-auth-service/internal/apperr"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// UserService is the user directory: uniqueness-checked CRUD plus the
// paginated listing.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService { return &UserService{users: users} }

// CreateUserInput is the payload for Create. Role defaults to "user"
// when empty.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
// A non-nil Password triggers a re-hash before the write.
type UpdateUserInput struct {
	Name            *string
	Email           *string
	Password        *string
	Role            *model.Role
	IsEmailVerified *bool
}

var errEmailTaken = apperr.Validation("Email already taken")

// Create registers a user. Uniqueness is enforced twice: an explicit
// pre-check here, and the unique index underneath for the window where
// two concurrent creates both pass the pre-check. Both surface as the
// same validation error.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (model.User, error) {
	taken, err := s.users.IsEmailTaken(ctx, input.Email, 0)
	if err != nil {
		return model.User{}, apperr.Storage(err)
	}
	if taken {
		return model.User{}, errEmailTaken
	}

	role := input.Role
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return model.User{}, apperr.Validation("Invalid role")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return model.User{}, apperr.Storage(err)
	}

	user, err := s.users.Create(ctx, model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return model.User{}, errEmailTaken
		}
		return model.User{}, apperr.Storage(err)
	}
	return user, nil
}

// Query returns one page of users matching filter.
func (s *UserService) Query(ctx context.Context, filter repository.UserFilter, opts repository.PageOptions) (repository.UserPage, error) {
	page, err := s.users.List(ctx, filter, opts)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSort) {
			return repository.UserPage{}, apperr.Validation("Invalid sort option")
		}
		return repository.UserPage{}, apperr.Storage(err)
	}
	return page, nil
}

// GetByID fetches a single user.
func (s *UserService) GetByID(ctx context.Context, id uint64) (model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, apperr.NotFound("User not found")
		}
		return model.User{}, apperr.Storage(err)
	}
	return user, nil
}

// GetByEmail fetches a single user by address.
func (s *UserService) GetByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, apperr.NotFound("User not found")
		}
		return model.User{}, apperr.Storage(err)
	}
	return user, nil
}

// Update applies a partial update. An email change re-checks uniqueness
// excluding the user itself; a password change re-hashes.
func (s *UserService) Update(ctx context.Context, id uint64, input UpdateUserInput) (model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.users.IsEmailTaken(ctx, *input.Email, id)
		if err != nil {
			return model.User{}, apperr.Storage(err)
		}
		if taken {
			return model.User{}, errEmailTaken
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		if !model.ValidRole(*input.Role) {
			return model.User{}, apperr.Validation("Invalid role")
		}
		user.Role = *input.Role
	}
	if input.IsEmailVerified != nil {
		user.IsEmailVerified = *input.IsEmailVerified
	}
	// Update ignores an empty hash, so only set it when a new password
	// arrives.
	user.PasswordHash = ""
	if input.Password != nil {
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			return model.User{}, apperr.Storage(err)
		}
		user.PasswordHash = hash
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return model.User{}, errEmailTaken
		}
		return model.User{}, apperr.Storage(err)
	}
	return updated, nil
}

// Delete removes a user. Token rows cascade at the schema level.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Storage(err)
	}
	return nil
}
