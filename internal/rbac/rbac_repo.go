package rbac

import "github.com/krushit1307/HRMS/internal/domain"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
	GetRoleInheritance() ([]RoleInheritanceRow, error)
}

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

// RoleInheritanceRow grants Role everything Parent may do.
type RoleInheritanceRow struct {
	Role   string
	Parent string
}

type staticRepository struct{}

// NewRepository returns the built-in policy table. Employees see and change their own
// data (ownership is checked by the services), HR manages everyone's, admins
// additionally manage access control.
func NewRepository() Repository {
	return staticRepository{}
}

var defaultPermissions = []RolePermissionRow{
	{Role: string(domain.RoleEmployee), Resource: "profile", Action: "read"},
	{Role: string(domain.RoleEmployee), Resource: "profile", Action: "update"},
	{Role: string(domain.RoleEmployee), Resource: "attendance", Action: "read"},
	{Role: string(domain.RoleEmployee), Resource: "attendance", Action: "create"},
	{Role: string(domain.RoleEmployee), Resource: "leave", Action: "read"},
	{Role: string(domain.RoleEmployee), Resource: "leave", Action: "create"},
	{Role: string(domain.RoleEmployee), Resource: "payroll", Action: "read"},
	{Role: string(domain.RoleEmployee), Resource: "dashboard", Action: "read"},
	{Role: string(domain.RoleEmployee), Resource: "rbac", Action: "read"},

	{Role: string(domain.RoleHR), Resource: "employee", Action: "read"},
	{Role: string(domain.RoleHR), Resource: "employee", Action: "create"},
	{Role: string(domain.RoleHR), Resource: "leave", Action: "approve"},
	{Role: string(domain.RoleHR), Resource: "payroll", Action: "create"},
	{Role: string(domain.RoleHR), Resource: "payroll", Action: "pay"},

	{Role: string(domain.RoleAdmin), Resource: "rbac", Action: "manage"},
}

var defaultInheritance = []RoleInheritanceRow{
	{Role: string(domain.RoleHR), Parent: string(domain.RoleEmployee)},
	{Role: string(domain.RoleAdmin), Parent: string(domain.RoleHR)},
}

func (staticRepository) GetRolePermissions() ([]RolePermissionRow, error) {
	return append([]RolePermissionRow(nil), defaultPermissions...), nil
}

func (staticRepository) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	return append([]RoleInheritanceRow(nil), defaultInheritance...), nil
}
