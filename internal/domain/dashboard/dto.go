package dashboard

import "github.com/shopspring/decimal"

// Summary is the admin landing-page snapshot for one company.
type Summary struct {
	Employees  EmployeeStats   `json:"employees"`
	Attendance AttendanceStats `json:"attendance"`
	Payroll    PayrollStats    `json:"payroll"`
}

type EmployeeStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// AttendanceStats breaks down today's records for the company.
type AttendanceStats struct {
	Present        int `json:"present"`
	Retard         int `json:"retard"`
	DepartAnticipe int `json:"depart_anticipe"`
	Absent         int `json:"absent"`
	NotCheckedIn   int `json:"not_checked_in"`
}

type PayrollStats struct {
	PendingBulletins int             `json:"pending_bulletins"`
	PartialBulletins int             `json:"partial_bulletins"`
	PaidBulletins    int             `json:"paid_bulletins"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
}
