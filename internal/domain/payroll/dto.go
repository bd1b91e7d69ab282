package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paietrack/paietrack-backend-go/internal/pkg/validator"
)

type CreatePayRunRequest struct {
	Label       string `json:"label"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r CreatePayRunRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{Field: "label", Message: "label is required"})
	}
	if _, ok := validator.IsValidDate(r.PeriodStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "period_start must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.PeriodEnd); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period_end must be YYYY-MM-DD"})
	}
	if len(errs) == 0 {
		start, _ := time.Parse("2006-01-02", r.PeriodStart)
		end, _ := time.Parse("2006-01-02", r.PeriodEnd)
		if !end.After(start) {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period_end must be after period_start"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	Reference *string         `json:"reference"`
}

func (r RecordPaymentRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsPositiveAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than zero"})
	}
	if !IsValidPaymentMethod(r.Method) {
		errs = append(errs, validator.ValidationError{Field: "method", Message: "method must be ESPECES, VIREMENT, ORANGE_MONEY or WAVE"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkPaymentRequest pays several bulletins in one call, typically "pay all
// remaining balances by bank transfer". Failures are reported per bulletin
// without aborting the rest.
type BulkPaymentRequest struct {
	BulletinIDs []string      `json:"bulletin_ids"`
	Method      PaymentMethod `json:"method"`
	Reference   *string       `json:"reference"`
}

func (r BulkPaymentRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.BulletinIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "bulletin_ids", Message: "at least one bulletin id is required"})
	}
	for _, id := range r.BulletinIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "bulletin_ids", Message: "invalid bulletin id"})
			break
		}
	}
	if !IsValidPaymentMethod(r.Method) {
		errs = append(errs, validator.ValidationError{Field: "method", Message: "method must be ESPECES, VIREMENT, ORANGE_MONEY or WAVE"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkPaymentResult struct {
	BulletinID string  `json:"bulletin_id"`
	Success    bool    `json:"success"`
	Error      *string `json:"error,omitempty"`
}

type ListBulletinsFilter struct {
	PayRunID       *string
	EmployeeID     *string
	StatutPaiement *StatutPaiement
	Page           int
	PerPage        int
}
