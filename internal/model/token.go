package model

import "time"

// TokenType enumerates the kinds of bearer tokens the service issues.
// Access tokens are proven by signature and expiry alone and are never
// written to the database; every other type is additionally persisted so
// it can be revoked server-side.
type TokenType string

const (
	TokenTypeAccess        TokenType = "access"
	TokenTypeRefresh       TokenType = "refresh"
	TokenTypeResetPassword TokenType = "resetPassword"
	TokenTypeVerifyEmail   TokenType = "verifyEmail"
)

// Token models a row in the `tokens` table.  A row exists only for
// refresh, resetPassword and verifyEmail tokens.  The Expires column is
// advisory: validity is decided by the signed exp claim inside the token
// value, and lookups intentionally do not filter on this column.
//
// Fields:
//  ID          – primary key identifier.
//  Value       – the signed token string (indexed for lookup).
//  UserID      – owner of the token.
//  Type        – token kind (refresh, resetPassword, verifyEmail).
//  Expires     – expiration timestamp recorded at issue time.
//  BlackListed – marks the token revoked without deleting the row.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Token struct {
	ID          uint64    `json:"id"`
	Value       string    `json:"token"`
	UserID      uint64    `json:"userId"`
	Type        TokenType `json:"type"`
	Expires     time.Time `json:"expires"`
	BlackListed bool      `json:"blackListed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
