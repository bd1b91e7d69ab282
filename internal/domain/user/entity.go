package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleCaissier   Role = "CAISSIER"
	RoleVigile     Role = "VIGILE"
	RoleEmployee   Role = "EMPLOYEE"
)

func IsValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCaissier, RoleVigile, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string     `json:"id"`
	CompanyID    *string    `json:"company_id,omitempty"`
	EmployeeID   *string    `json:"employee_id,omitempty"`
	Email        string     `json:"email"`
	PasswordHash *string    `json:"-"`
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
