package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/user-auth-service/internal/model"
)

// userColumns is the default projection. The password hash is absent on
// purpose: only GetByEmailWithPassword, used by login, ever selects it.
const userColumns = "id, name, email, role, is_email_verified, created_at, updated_at"

// mysqlDuplicateEntry is the driver error number for a unique-key
// violation (the email index here).
const mysqlDuplicateEntry = 1062

// UserRepo persists user accounts in the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// UserFilter narrows a List query. Zero-valued fields are ignored.
type UserFilter struct {
	Name string
	Role model.Role
}

// UserPage is one page of a paginated user listing.
type UserPage struct {
	Results      []model.User `json:"results"`
	Page         int          `json:"page"`
	Limit        int          `json:"limit"`
	TotalPages   int          `json:"totalPages"`
	TotalResults int          `json:"totalResults"`
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// Create inserts a user (hash already computed by the caller) and returns
// the stored row. A duplicate-key violation on the email index maps to
// ErrEmailTaken so the constraint backstop and the pre-check surface the
// same way.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role, is_email_verified) VALUES (?,?,?,?,?)",
		u.Name, u.Email, u.PasswordHash, u.Role, u.IsEmailVerified)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("insert user id: %w", err)
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a user without the password hash.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByEmail fetches a user without the password hash.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByEmailWithPassword is the login read: the only query that selects
// the password hash.
func (r *UserRepo) GetByEmailWithPassword(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, is_email_verified, created_at, updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// IsEmailTaken reports whether another user already holds the address.
// excludeID skips a row (the user being updated); pass 0 on create.
func (r *UserRepo) IsEmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email=? AND id<>? LIMIT 1", email, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("email lookup: %w", err)
	}
	return true, nil
}

// Update writes the mutable columns of u back to its row. An empty
// PasswordHash leaves the stored hash untouched. Duplicate email maps to
// ErrEmailTaken like Create.
func (r *UserRepo) Update(ctx context.Context, u model.User) (model.User, error) {
	query := "UPDATE users SET name=?, email=?, role=?, is_email_verified=?"
	args := []interface{}{u.Name, u.Email, u.Role, u.IsEmailVerified}
	if u.PasswordHash != "" {
		query += ", password_hash=?"
		args = append(args, u.PasswordHash)
	}
	query += " WHERE id=?"
	args = append(args, u.ID)

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("update user: %w", err)
	}
	return r.GetByID(ctx, u.ID)
}

// Delete removes a user row. Token rows cascade at the schema level.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of users matching filter. Limit and page fall
// back to their defaults on malformed input; sortBy pairs are validated
// against the column whitelist. TotalPages is ceil(TotalResults/Limit).
func (r *UserRepo) List(ctx context.Context, filter UserFilter, opts PageOptions) (UserPage, error) {
	limit, page := parseLimitPage(opts)
	orderBy, err := buildOrderBy(opts.SortBy)
	if err != nil {
		return UserPage{}, err
	}

	where, args := buildUserWhere(filter)

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return UserPage{}, fmt.Errorf("count users: %w", err)
	}

	query := "SELECT " + userColumns + " FROM users" + where +
		" ORDER BY " + orderBy + " LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, query, append(args, limit, (page-1)*limit)...)
	if err != nil {
		return UserPage{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	results := make([]model.User, 0, limit)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return UserPage{}, fmt.Errorf("scan user: %w", err)
		}
		results = append(results, u)
	}
	if err := rows.Err(); err != nil {
		return UserPage{}, fmt.Errorf("list users: %w", err)
	}

	return UserPage{
		Results:      results,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages(total, limit),
		TotalResults: total,
	}, nil
}

func buildUserWhere(filter UserFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if filter.Name != "" {
		conds = append(conds, "name=?")
		args = append(args, filter.Name)
	}
	if filter.Role != "" {
		conds = append(conds, "role=?")
		args = append(args, filter.Role)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
