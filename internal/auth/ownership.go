package auth

// Decision is the outcome of an ownership check on a mutating request.
type Decision int

const (
	// Allow means the caller owns the resource or is an administrator.
	Allow Decision = iota
	// DenyUnauthenticated means no identity was present on the request.
	DenyUnauthenticated
	// DenyNotFound means the claimed resource does not exist.
	DenyNotFound
	// DenyForbidden means the resource exists but belongs to someone else.
	DenyForbidden
)

// String returns a short name for logging.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	case DenyNotFound:
		return "deny_not_found"
	case DenyForbidden:
		return "deny_forbidden"
	}
	return "unknown"
}

// DecideOwnership applies the ownership rule used for campgrounds and
// comments alike. The identity check comes first: an anonymous caller
// is rejected before the resource lookup result is even considered.
// found reports whether the resource lookup returned a row; ownerID is
// only meaningful when found is true.
//
// The caller must fetch the resource fresh on every mutating request.
// Caching a previous decision would let a stale owner keep mutating a
// resource after ownership changed.
func DecideOwnership(ident *Identity, ownerID uint64, found bool) Decision {
	if ident == nil {
		return DenyUnauthenticated
	}
	if !found {
		return DenyNotFound
	}
	if ident.ID == ownerID || ident.IsAdmin {
		return Allow
	}
	return DenyForbidden
}
