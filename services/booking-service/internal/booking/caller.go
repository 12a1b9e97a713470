package booking

// Caller roles recognized by the booking operations.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Caller is the identity performing an operation. It is always passed
// explicitly; operations never read identity from ambient state.
type Caller struct {
	UserID        string
	Role          string
	Authenticated bool
}

func (c Caller) hasRole(role string) bool {
	return c.Authenticated && c.Role == role
}

func requireRole(c Caller, role string) error {
	if !c.hasRole(role) {
		return newError(KindUnauthorized, msgNotYourRole)
	}
	return nil
}
