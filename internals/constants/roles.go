package constants

import "fmt"

// Role names as stored in users.user_role
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Error message templates per role gate
const (
	ErrOnlyAdminsCanAccess   = "❌ Only admins may access %s."
	ErrOnlyStudentsCanAccess = "❌ Only students may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	StudentOnly = []string{
		RoleStudent,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
