// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow handlers to distinguish
// between failure scenarios without inspecting driver errors. For
// example, ErrNotFound maps to a 404 while ErrUsernameExists and
// ErrEmailExists map to a 409 conflict.
package repository

import "errors"

// ErrNotFound is returned when a lookup by id or token matches no row.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when registration collides with an
// existing username.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when registration collides with an existing
// email address.
var ErrEmailExists = errors.New("email already exists")

// ErrResetTokenInvalid is returned when a password reset presents a token
// that is unknown, expired or already consumed.
var ErrResetTokenInvalid = errors.New("reset token invalid or expired")
