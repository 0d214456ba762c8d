package principal

// Role is the closed set of roles a resolved principal can carry.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// ParseRole normalizes a raw token role into the closed set. The
// legacy "user" role is an alias for customer and grants nothing more.
func ParseRole(raw string) (Role, bool) {
	switch raw {
	case "customer", "user":
		return RoleCustomer, true
	case "vendor":
		return RoleVendor, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Principal is the actor behind a request: either anonymous or an
// authenticated identity with a role. Authorization code matches on
// IsAuthenticated instead of null-checking a user object.
type Principal struct {
	ID              string
	Role            Role
	IsAuthenticated bool
}

// Anonymous is the principal for requests without a valid token.
var Anonymous = Principal{}

func Authenticated(id string, role Role) Principal {
	return Principal{ID: id, Role: role, IsAuthenticated: true}
}

func (p Principal) IsAdmin() bool  { return p.IsAuthenticated && p.Role == RoleAdmin }
func (p Principal) IsVendor() bool { return p.IsAuthenticated && p.Role == RoleVendor }

// IsStaff reports whether the principal may use vendor/admin
// operational endpoints (order overview, delivery, return handling).
func (p Principal) IsStaff() bool { return p.IsAdmin() || p.IsVendor() }
