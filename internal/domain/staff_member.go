package domain

import "time"

// StaffRole enumerates directory roles.
type StaffRole string

const (
	StaffRoleUser       StaffRole = "user"
	StaffRoleSupervisor StaffRole = "supervisor"
	StaffRoleAdmin      StaffRole = "admin"
)

// ValidStaffRole reports whether the value is one of the enumerated roles.
func ValidStaffRole(role StaffRole) bool {
	switch role {
	case StaffRoleUser, StaffRoleSupervisor, StaffRoleAdmin:
		return true
	}
	return false
}

// StaffMember is a field-staff directory record. ID equals the backing
// identity-provider account UID and never changes after creation.
type StaffMember struct {
	ID         string
	Name       string
	Email      string
	EmployeeID string
	Role       StaffRole
	Phone      string
	Department string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
