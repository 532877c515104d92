package model

import "time"

// User represents an application account as stored in the `users` table.
// Each field corresponds to a column in the database.  The PasswordHash
// field is only populated by the single repository read used during login;
// every other query excludes the column so the hash can never leak into a
// response by accident.  The json tag "-" is a second line of defense for
// the same reason.
//
// Fields:
//  ID              – primary key identifier of the user.
//  Name            – display name.
//  Email           – unique email address, stored and compared as given.
//  PasswordHash    – argon2id encoded password hash (login reads only).
//  Role            – role name ("user" or "admin").
//  IsEmailVerified – whether the address has been confirmed.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type User struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Role            Role      `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Sanitized returns a copy of the user with the password hash cleared.
// Services hand this copy back to callers after login so the hash never
// crosses the service boundary.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
