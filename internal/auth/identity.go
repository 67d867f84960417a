// Package auth holds the request identity value and the ownership
// decision logic shared by middleware and handlers. An Identity is
// resolved once per request (from the session cookie or a bearer
// token) and injected into the request context; it is never read
// from ambient globals.
package auth

// Identity describes the authenticated account behind a request.
//
// Fields:
//  ID       – primary key of the users row.
//  Username – unique display name, denormalized onto owned resources.
//  IsAdmin  – administrator flag; admins bypass ownership checks.
//  IsPaid   – whether the registration fee has been paid.
type Identity struct {
	ID       uint64 // users.id
	Username string // users.username
	IsAdmin  bool   // users.is_admin
	IsPaid   bool   // users.is_paid
}
