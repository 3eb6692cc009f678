package domain

import "errors"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// AdminAuthority is the authorities-claim marker that confers the admin role.
const AdminAuthority = "ROLE_ADMIN"

var ErrMalformedCredential = errors.New("malformed credential")
var ErrAuthRejected = errors.New("authentication rejected")
var ErrUnauthorized = errors.New("not authorized")

// Identity is the principal derived from a bearer credential. It is always a
// pure function of the stored credential; no identity state exists apart
// from it.
type Identity struct {
	Principal string
	Role      string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Session is the logged-in/logged-out lifecycle around an Identity.
type Session struct {
	Identity *Identity
}

// LoggedIn reports whether the session holds a derived identity.
func (s Session) LoggedIn() bool {
	return s.Identity != nil
}
