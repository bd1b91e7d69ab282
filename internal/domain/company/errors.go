package company

import "errors"

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyNameTaken     = errors.New("company name already in use")
	ErrCompanyAccessDenied  = errors.New("company does not belong to the current user")
	ErrRulesNotFound        = errors.New("attendance rules not found")
	ErrCompanyAlreadyExists = errors.New("user already owns a company")
)
