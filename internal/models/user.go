package models

// Role identifies which side of the marketplace an account belongs to.
type Role string

const (
	// RoleSenior marks instructor accounts. Seniors host classes and get the
	// large display mode by default.
	RoleSenior Role = "SENIOR"
	// RoleYouth marks learner accounts. Only youths can reserve a seat.
	RoleYouth Role = "YOUTH"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleSenior || r == RoleYouth
}

// SessionUser is the signed-in identity as returned by the auth endpoints and
// persisted in the session cookie. It is the only user state the front end
// keeps; everything else lives in the backend.
type SessionUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// IsSenior reports whether the user is an instructor account.
func (u *SessionUser) IsSenior() bool {
	return u != nil && u.Role == RoleSenior
}
