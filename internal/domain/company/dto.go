package company

import (
	"github.com/paietrack/paietrack-backend-go/internal/pkg/validator"
)

type CreateCompanyRequest struct {
	Name     string  `json:"name"`
	Address  *string `json:"address"`
	Currency string  `json:"currency"`
}

func (r CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "company name is required"})
	}
	if !validator.IsEmpty(r.Currency) && len(r.Currency) != 3 {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "currency must be a 3-letter code"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCompanyRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Currency *string `json:"currency"`
}

func (r UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "company name cannot be empty"})
	}
	if r.Currency != nil && len(*r.Currency) != 3 {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "currency must be a 3-letter code"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
