package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/user-auth-service/internal/model"
)

const tokenColumns = "id, token, user_id, type, expires, black_listed, created_at, updated_at"

// TokenRepo persists issued refresh/reset/verify tokens in the `tokens`
// table. Access tokens never pass through here.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Save inserts a token row and returns it.
func (r *TokenRepo) Save(ctx context.Context, value string, userID uint64, expires time.Time, tokenType model.TokenType, blackListed bool) (model.Token, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tokens (token, user_id, type, expires, black_listed) VALUES (?,?,?,?,?)",
		value, userID, tokenType, expires, blackListed)
	if err != nil {
		return model.Token{}, fmt.Errorf("insert token: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Token{}, fmt.Errorf("insert token id: %w", err)
	}
	return r.getByID(ctx, uint64(id))
}

// Find returns the non-blacklisted row matching (value, type).
// There is deliberately no expires filter here: expiry is enforced by the
// signed exp claim at decode time, and the column stays advisory.
func (r *TokenRepo) Find(ctx context.Context, value string, tokenType model.TokenType) (model.Token, error) {
	return scanToken(r.DB.QueryRowContext(ctx,
		"SELECT "+tokenColumns+" FROM tokens WHERE token=? AND type=? AND black_listed=0 LIMIT 1",
		value, tokenType))
}

// Delete removes the row matching (value, type). Deleting an absent
// token is not an error.
func (r *TokenRepo) Delete(ctx context.Context, value string, tokenType model.TokenType) error {
	if _, err := r.DB.ExecContext(ctx,
		"DELETE FROM tokens WHERE token=? AND type=?", value, tokenType); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// DeleteAllForUser removes every token of the given type owned by the
// user. Used when a reset or verify token is consumed, so stale
// multi-issued tokens die with the one presented. Idempotent.
func (r *TokenRepo) DeleteAllForUser(ctx context.Context, userID uint64, tokenType model.TokenType) error {
	if _, err := r.DB.ExecContext(ctx,
		"DELETE FROM tokens WHERE user_id=? AND type=?", userID, tokenType); err != nil {
		return fmt.Errorf("delete tokens: %w", err)
	}
	return nil
}

func (r *TokenRepo) getByID(ctx context.Context, id uint64) (model.Token, error) {
	return scanToken(r.DB.QueryRowContext(ctx,
		"SELECT "+tokenColumns+" FROM tokens WHERE id=? LIMIT 1", id))
}

func scanToken(row *sql.Row) (model.Token, error) {
	var t model.Token
	err := row.Scan(&t.ID, &t.Value, &t.UserID, &t.Type, &t.Expires, &t.BlackListed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Token{}, ErrNotFound
	}
	if err != nil {
		return model.Token{}, fmt.Errorf("scan token: %w", err)
	}
	return t, nil
}
