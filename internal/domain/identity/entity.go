package identity

// Role determines which tabs are visible and whether the department
// filter is implicit or selectable.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Identity is the authenticated user restored from the persisted session
// file at startup. It is immutable for the lifetime of the process and
// destroyed on logout.
type Identity struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Role        Role   `json:"role"`
	Department  string `json:"department"`
	DisplayName string `json:"display_name"`

	// Token is the opaque session credential issued by the backend. The
	// console never verifies it; it only forwards it as a bearer token.
	Token string `json:"token,omitempty"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
