package models

// Role defines the coarse user role
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEmployee  Role = "employee"
	RoleStudent   Role = "student"
	RoleCandidate Role = "candidate"
)

// SubRole defines the fine-grained employee classification.
// Only meaningful when Role is RoleEmployee.
type SubRole string

const (
	SubRoleFaculty   SubRole = "faculty"
	SubRoleHR        SubRole = "hr"
	SubRoleFinance   SubRole = "finance"
	SubRoleMarketing SubRole = "marketing"
	SubRoleIT        SubRole = "it"
	SubRoleTeacher   SubRole = "teacher"
	SubRoleOther     SubRole = "other"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleStudent, RoleCandidate:
		return true
	}
	return false
}

// ValidSubRole reports whether s is one of the known employee sub-roles.
func ValidSubRole(s SubRole) bool {
	switch s {
	case SubRoleFaculty, SubRoleHR, SubRoleFinance, SubRoleMarketing, SubRoleIT, SubRoleTeacher, SubRoleOther:
		return true
	}
	return false
}

// AllRoles lists every role, used by report grouping.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleEmployee, RoleStudent, RoleCandidate}
}

// AllSubRoles lists every employee sub-role, used by report grouping.
func AllSubRoles() []SubRole {
	return []SubRole{SubRoleFaculty, SubRoleHR, SubRoleFinance, SubRoleMarketing, SubRoleIT, SubRoleTeacher, SubRoleOther}
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
