package employee

import (
	"github.com/shopspring/decimal"

	"github.com/paietrack/paietrack-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName     string          `json:"full_name"`
	Position     string          `json:"position"`
	ContractType ContractType    `json:"contract_type"`
	BaseRate     decimal.Decimal `json:"base_rate"`
	Email        *string         `json:"email"`
	Phone        *string         `json:"phone"`
	BankDetails  *string         `json:"bank_details"`
	HiredAt      *string         `json:"hired_at"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full name is required"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position is required"})
	}
	if !IsValidContractType(r.ContractType) {
		errs = append(errs, validator.ValidationError{Field: "contract_type", Message: "contract type must be FIXE, JOURNALIER or HONORAIRE"})
	}
	if !validator.IsPositiveAmount(r.BaseRate) {
		errs = append(errs, validator.ValidationError{Field: "base_rate", Message: "base rate must be greater than zero"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if r.HiredAt != nil {
		if _, ok := validator.IsValidDate(*r.HiredAt); !ok {
			errs = append(errs, validator.ValidationError{Field: "hired_at", Message: "hired_at must be YYYY-MM-DD"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FullName     *string          `json:"full_name"`
	Position     *string          `json:"position"`
	ContractType *ContractType    `json:"contract_type"`
	BaseRate     *decimal.Decimal `json:"base_rate"`
	Status       *Status          `json:"status"`
	Email        *string          `json:"email"`
	Phone        *string          `json:"phone"`
	BankDetails  *string          `json:"bank_details"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full name cannot be empty"})
	}
	if r.ContractType != nil && !IsValidContractType(*r.ContractType) {
		errs = append(errs, validator.ValidationError{Field: "contract_type", Message: "contract type must be FIXE, JOURNALIER or HONORAIRE"})
	}
	if r.BaseRate != nil && !validator.IsPositiveAmount(*r.BaseRate) {
		errs = append(errs, validator.ValidationError{Field: "base_rate", Message: "base rate must be greater than zero"})
	}
	if r.Status != nil && !IsValidStatus(*r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be ACTIVE, INACTIVE or TERMINATED"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeesFilter struct {
	Status       *Status
	ContractType *ContractType
	Search       string
	Page         int
	PerPage      int
}
