package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/campora/campground-api/internal/model"
	"github.com/campora/campground-api/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,username,first_name,last_name,email,avatar_url,password_hash,is_admin,is_paid,reset_token,reset_expires,created_at,updated_at"

// Create inserts an account with a freshly hashed credential and returns
// its ID. Username and email are normalized before the insert.
func (r *UserRepo) Create(ctx context.Context, a *model.Account, password string, cost int) (uint64, error) {
	a.Username = strings.TrimSpace(a.Username)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, first_name, last_name, email, avatar_url, password_hash, is_admin) VALUES (?,?,?,?,?,?,?)",
		a.Username, a.FirstName, a.LastName, a.Email, a.AvatarURL, hash, a.IsAdmin)
	if err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			return 0, dup
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	a.ID = uint64(id)
	return a.ID, nil
}

// duplicateKeyError maps a MySQL 1062 violation onto the offending unique
// key. Returns nil when err is not a duplicate-key error.
func duplicateKeyError(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return nil
	}
	if strings.Contains(msg, "username") {
		return ErrUsernameExists
	}
	return ErrEmailExists
}

// GetByID fetches an account by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	return r.getOne(ctx, "SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id)
}

// GetByUsername fetches an account by its unique username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	return r.getOne(ctx, "SELECT "+userCols+" FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username))
}

// GetByEmail fetches an account by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	return r.getOne(ctx, "SELECT "+userCols+" FROM users WHERE email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email)))
}

// GetByResetToken fetches the account holding the given reset token,
// filtered to tokens that have not yet expired. A consumed or expired
// token matches no row and yields ErrNotFound.
func (r *UserRepo) GetByResetToken(ctx context.Context, token string) (model.Account, error) {
	return r.getOne(ctx,
		"SELECT "+userCols+" FROM users WHERE reset_token=? AND reset_expires > UTC_TIMESTAMP() LIMIT 1",
		token)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (model.Account, error) {
	var (
		a       model.Account
		resetTk sql.NullString
		resetEx sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Username, &a.FirstName, &a.LastName, &a.Email, &a.AvatarURL,
		&a.PasswordHash, &a.IsAdmin, &a.IsPaid, &resetTk, &resetEx,
		&a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Account{}, ErrNotFound
	}
	if err != nil {
		return model.Account{}, err
	}
	if resetTk.Valid {
		a.ResetToken = &resetTk.String
	}
	if resetEx.Valid {
		a.ResetExpires = &resetEx.Time
	}
	return a, nil
}

// SetResetToken stores a pending reset token and its expiry on the
// account. A previously pending token is overwritten, which is the only
// form of revocation the flow supports besides expiry and consumption.
func (r *UserRepo) SetResetToken(ctx context.Context, userID uint64, token string, expires time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET reset_token=?, reset_expires=? WHERE id=?",
		token, expires.UTC(), userID)
	return err
}

// ConsumeResetToken writes the new password hash and clears the reset
// token and expiry in a single statement, so the token cannot be replayed
// after a successful change. The token and expiry filter in the WHERE
// clause make the consumption atomic: a concurrent consumption or an
// expiry between lookup and update leaves zero rows affected.
func (r *UserRepo) ConsumeResetToken(ctx context.Context, userID uint64, token, newHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, reset_token=NULL, reset_expires=NULL WHERE id=? AND reset_token=? AND reset_expires > UTC_TIMESTAMP()",
		newHash, userID, token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrResetTokenInvalid
	}
	return nil
}

// MarkPaid flips the paid flag after a confirmed payment. Marking an
// already-paid account is a no-op, so rows-affected is not checked here
// (MySQL reports zero changed rows for an identical value).
func (r *UserRepo) MarkPaid(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET is_paid=1 WHERE id=?", userID)
	return err
}
