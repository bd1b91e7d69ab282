package payroll

import "errors"

var (
	ErrPayRunNotFound         = errors.New("pay run not found")
	ErrPayRunAlreadyGenerated = errors.New("pay run already generated")
	ErrPayRunOverlap          = errors.New("a pay run already covers this period")
	ErrBulletinNotFound       = errors.New("bulletin not found")
	ErrNoActiveEmployees      = errors.New("no active employees to pay")
	ErrInvalidPaymentAmount   = errors.New("payment amount must be greater than zero")
	ErrPaymentExceedsBalance  = errors.New("payment exceeds remaining balance")
	ErrBulletinAlreadyPaid    = errors.New("bulletin is already fully paid")
)
