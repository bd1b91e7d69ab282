package user

import (
	"github.com/paietrack/paietrack-backend-go/internal/pkg/validator"
)

// CreateUserRequest is an admin creating a staff account: a cashier, a gate
// guard or an employee's self-service login.
type CreateUserRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	FullName   string  `json:"full_name"`
	Role       Role    `json:"role"`
	EmployeeID *string `json:"employee_id"`
}

func (r CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full name is required"})
	}
	if !IsValidRole(r.Role) || r.Role == RoleSuperAdmin {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be ADMIN, CAISSIER, VIGILE or EMPLOYEE"})
	}
	if r.Role == RoleEmployee && r.EmployeeID == nil {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee accounts must reference an employee"})
	}
	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "invalid employee id"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
