package model

import "time"

// Account represents a registered user as stored in the `users` table.
// Accounts are created at registration and never hard-deleted; password
// changes, admin-code grants, payment completion and reset-token handling
// all mutate the same row.
//
// Fields:
//  ID           – primary key identifier of the account.
//  Username     – unique display name, denormalized onto owned resources.
//  FirstName    – optional given name.
//  LastName     – optional family name.
//  Email        – unique email address, lookup key for password resets.
//  AvatarURL    – optional profile image URL.
//  PasswordHash – bcrypt hashed credential.
//  IsAdmin      – administrator flag; set when the admin code matched at
//                 registration.
//  IsPaid       – whether the one-time registration fee has been paid.
//  ResetToken   – pending password-reset token (nil when none issued).
//  ResetExpires – expiry instant of the pending reset token.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Account struct {
	ID           uint64     `json:"id"`         // users.id
	Username     string     `json:"username"`   // users.username
	FirstName    string     `json:"first_name"` // users.first_name
	LastName     string     `json:"last_name"`  // users.last_name
	Email        string     `json:"email"`      // users.email
	AvatarURL    string     `json:"avatar_url"` // users.avatar_url
	PasswordHash string     `json:"-"`          // users.password_hash, never serialized
	IsAdmin      bool       `json:"is_admin"`   // users.is_admin
	IsPaid       bool       `json:"is_paid"`    // users.is_paid
	ResetToken   *string    `json:"-"`          // users.reset_token (nullable)
	ResetExpires *time.Time `json:"-"`          // users.reset_expires (nullable)
	CreatedAt    time.Time  `json:"created_at"` // users.created_at
	UpdatedAt    time.Time  `json:"updated_at"` // users.updated_at
}

// DisplayName returns the full name when present, otherwise the username.
func (a Account) DisplayName() string {
	if a.FirstName == "" && a.LastName == "" {
		return a.Username
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
