package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		name       string
		role       Role
		permission Permission
		want       bool
	}{
		{"admin manages payroll", RoleAdmin, PermissionPayrollManage, true},
		{"admin manages users", RoleAdmin, PermissionUserManage, true},
		{"admin cannot manage all companies", RoleAdmin, PermissionCompanyManageAll, false},
		{"super admin manages all companies", RoleSuperAdmin, PermissionCompanyManageAll, true},
		{"cashier processes payments", RoleCaissier, PermissionPaymentProcess, true},
		{"cashier cannot manage payroll", RoleCaissier, PermissionPayrollManage, false},
		{"cashier cannot manage employees", RoleCaissier, PermissionEmployeeManage, false},
		{"guard scans badges", RoleVigile, PermissionAttendanceScanQR, true},
		{"guard cannot view payroll", RoleVigile, PermissionPayrollView, false},
		{"employee checks in", RoleEmployee, PermissionAttendanceCheckSelf, true},
		{"employee views own bulletins", RoleEmployee, PermissionPayrollViewOwn, true},
		{"employee cannot view all attendance", RoleEmployee, PermissionAttendanceViewAll, false},
		{"unknown role has nothing", Role("INTERN"), PermissionCompanyView, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, HasPermission(c.role, c.permission))
		})
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range []Role{RoleSuperAdmin, RoleAdmin, RoleCaissier, RoleVigile, RoleEmployee} {
		assert.True(t, IsValidRole(r), "role %s", r)
	}
	assert.False(t, IsValidRole(Role("MANAGER")))
	assert.False(t, IsValidRole(Role("")))
}

func TestRolePermissions_EveryRoleResolvable(t *testing.T) {
	for role, permissions := range RolePermissions {
		assert.True(t, IsValidRole(role), "role %s in table but not valid", role)
		assert.NotEmpty(t, permissions, "role %s has no permissions", role)
	}
}
