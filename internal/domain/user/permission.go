package user

type Permission string

const (
	// Company Management
	PermissionCompanyView      Permission = "company.view"
	PermissionCompanyManage    Permission = "company.manage"
	PermissionCompanyManageAll Permission = "company.manage_all"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Attendance Management
	PermissionAttendanceCheckSelf Permission = "attendance.check_self"
	PermissionAttendanceViewOwn   Permission = "attendance.view_own"
	PermissionAttendanceViewAll   Permission = "attendance.view_all"
	PermissionAttendanceScanQR    Permission = "attendance.scan_qr"
	PermissionAttendanceOverride  Permission = "attendance.override"

	// Payroll Management
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollView    Permission = "payroll.view"
	PermissionPayrollManage  Permission = "payroll.manage"

	// Payments
	PermissionPaymentProcess Permission = "payment.process"

	// Reports & Dashboard
	PermissionReportsView   Permission = "reports.view"
	PermissionDashboardView Permission = "dashboard.view"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions is the single capability table checked at the routing
// boundary. Routes never hard-code roles beyond this mapping.
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionCompanyView,
		PermissionCompanyManage,
		PermissionCompanyManageAll,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionAttendanceViewAll,
		PermissionAttendanceScanQR,
		PermissionAttendanceOverride,
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionPaymentProcess,
		PermissionReportsView,
		PermissionDashboardView,
		PermissionUserManage,
	},
	RoleAdmin: {
		PermissionCompanyView,
		PermissionCompanyManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionAttendanceViewAll,
		PermissionAttendanceScanQR,
		PermissionAttendanceOverride,
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionPaymentProcess,
		PermissionReportsView,
		PermissionDashboardView,
		PermissionUserManage,
	},
	RoleCaissier: {
		PermissionCompanyView,
		PermissionEmployeeViewAll,
		PermissionPayrollView,
		PermissionPaymentProcess,
		PermissionDashboardView,
	},
	RoleVigile: {
		PermissionCompanyView,
		PermissionAttendanceScanQR,
		PermissionAttendanceViewAll,
	},
	RoleEmployee: {
		PermissionAttendanceCheckSelf,
		PermissionAttendanceViewOwn,
		PermissionPayrollViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
