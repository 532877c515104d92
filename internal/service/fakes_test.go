package service

import (
	"context"
	"strconv"
	"time"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/repository"
)

// In-memory store fakes mirroring the repository contracts: projections
// without the password hash except for the login read, ErrEmailTaken on
// duplicates, idempotent token deletes.

type fakeUserStore struct {
	nextID   uint64
	users    map[uint64]model.User
	creates  error // forced Create failure, simulates the constraint backstop
	listErr  error // forced List failure
	sequence []uint64 // insertion order for deterministic listing
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u model.User) (model.User, error) {
	if f.creates != nil {
		return model.User{}, f.creates
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return model.User{}, repository.ErrEmailTaken
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	f.sequence = append(f.sequence, u.ID)
	return u.Sanitized(), nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u.Sanitized(), nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u.Sanitized(), nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByEmailWithPassword(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) IsEmailTaken(_ context.Context, email string, excludeID uint64) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Update(_ context.Context, u model.User) (model.User, error) {
	stored, ok := f.users[u.ID]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	// An empty hash leaves the stored one untouched, like the real repo.
	if u.PasswordHash == "" {
		u.PasswordHash = stored.PasswordHash
	}
	u.CreatedAt = stored.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	f.users[u.ID] = u
	return u.Sanitized(), nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) List(_ context.Context, filter repository.UserFilter, opts repository.PageOptions) (repository.UserPage, error) {
	if f.listErr != nil {
		return repository.UserPage{}, f.listErr
	}
	limit := positiveOr(opts.Limit, 10)
	page := positiveOr(opts.Page, 1)

	var matched []model.User
	for _, id := range f.sequence {
		u, ok := f.users[id]
		if !ok {
			continue
		}
		if filter.Name != "" && u.Name != filter.Name {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		matched = append(matched, u.Sanitized())
	}

	total := len(matched)
	offset := (page - 1) * limit
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return repository.UserPage{
		Results:      matched[offset:end],
		Page:         page,
		Limit:        limit,
		TotalPages:   (total + limit - 1) / limit,
		TotalResults: total,
	}, nil
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

type fakeTokenStore struct {
	nextID uint64
	rows   []model.Token
}

func newFakeTokenStore() *fakeTokenStore { return &fakeTokenStore{} }

func (f *fakeTokenStore) Save(_ context.Context, value string, userID uint64, expires time.Time, tokenType model.TokenType, blackListed bool) (model.Token, error) {
	f.nextID++
	t := model.Token{
		ID:          f.nextID,
		Value:       value,
		UserID:      userID,
		Type:        tokenType,
		Expires:     expires,
		BlackListed: blackListed,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	f.rows = append(f.rows, t)
	return t, nil
}

func (f *fakeTokenStore) Find(_ context.Context, value string, tokenType model.TokenType) (model.Token, error) {
	for _, t := range f.rows {
		if t.Value == value && t.Type == tokenType && !t.BlackListed {
			return t, nil
		}
	}
	return model.Token{}, repository.ErrNotFound
}

func (f *fakeTokenStore) Delete(_ context.Context, value string, tokenType model.TokenType) error {
	kept := f.rows[:0]
	for _, t := range f.rows {
		if !(t.Value == value && t.Type == tokenType) {
			kept = append(kept, t)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeTokenStore) DeleteAllForUser(_ context.Context, userID uint64, tokenType model.TokenType) error {
	kept := f.rows[:0]
	for _, t := range f.rows {
		if !(t.UserID == userID && t.Type == tokenType) {
			kept = append(kept, t)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeTokenStore) countByType(userID uint64, tokenType model.TokenType) int {
	n := 0
	for _, t := range f.rows {
		if t.UserID == userID && t.Type == tokenType {
			n++
		}
	}
	return n
}
