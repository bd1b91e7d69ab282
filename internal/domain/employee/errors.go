package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeNotActive     = errors.New("employee is not active")
	ErrInvalidContractType   = errors.New("invalid contract type")
	ErrInvalidEmployeeStatus = errors.New("invalid employee status")
	ErrQRTokenNotFound       = errors.New("unknown qr token")
)
