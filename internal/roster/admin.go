package roster

// Department is one of the fixed station departments.
type Department string

// Departments lists every valid department, in display order.
var Departments = []Department{
	"Operations",
	"Watch Room",
	"Safety",
	"Admin",
	"Investigation",
	"Welfare",
	"Accounts",
	"Statistics",
	"Stores",
	"Training",
	"IT",
}

// ValidDepartment reports whether d names a known department.
func ValidDepartment(d Department) bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// Role is a dashboard operator role.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStats      Role = "stats"
	RoleAccounts   Role = "accounts"
	RoleOperations Role = "operations"
)

// Roles lists every valid operator role.
var Roles = []Role{RoleAdmin, RoleStats, RoleAccounts, RoleOperations}

// ValidRole reports whether r names a known role.
func ValidRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Admin is a system operator account, distinct from an Officer.
type Admin struct {
	ID         string     `json:"_id"`
	FullName   string     `json:"fullName"`
	Department Department `json:"department"`
	Username   string     `json:"username"`
	// Password is write-only: populated on create/update payloads,
	// never echoed back by the backend.
	Password  string `json:"password,omitempty"`
	Role      Role   `json:"role"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Rank      string `json:"rank,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
}

// Equal reports whether two admin records carry the same visible field
// values. The write-only password field does not participate.
func (a Admin) Equal(other Admin) bool {
	a.Password = ""
	other.Password = ""
	return a == other
}

// User is the authenticated session identity.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
