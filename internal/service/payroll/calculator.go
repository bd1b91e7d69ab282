package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/domain/payroll"
)

// DeductionRate is the statutory withholding applied to gross pay, split
// evenly between the pension and social security lines.
var DeductionRate = decimal.NewFromFloat(0.05)

const (
	deductionRetraite        = "retraite"
	deductionSecuriteSociale = "securite_sociale"
)

// WorkedTotals is what an employee actually worked over the period, resolved
// from attendance aggregates with the company defaults as fallback.
type WorkedTotals struct {
	Days  int
	Hours decimal.Decimal
}

// ResolveWorkedTotals turns an attendance summary into billable days and
// hours. Employees with no attendance rows at all fall back to the company
// defaults, so payroll stays usable before attendance tracking is adopted.
// An employee who was tracked but absent every day gets zero, not the
// defaults.
func ResolveWorkedTotals(summary *attendance.Summary, rules attendance.Rules) WorkedTotals {
	if summary == nil || summary.DaysTracked == 0 {
		return WorkedTotals{
			Days:  rules.DefaultWorkedDays,
			Hours: decimal.NewFromInt(int64(rules.DefaultWorkedHours)),
		}
	}
	return WorkedTotals{
		Days:  summary.DaysPresent,
		Hours: decimal.NewFromInt(int64(summary.MinutesWorked)).Div(decimal.NewFromInt(60)).Round(2),
	}
}

// ComputeGross derives gross pay from the contract type: monthly salary for
// FIXE, day rate times days for JOURNALIER, hourly rate times hours for
// HONORAIRE.
func ComputeGross(emp employee.Employee, worked WorkedTotals) decimal.Decimal {
	switch emp.ContractType {
	case employee.ContractJournalier:
		return emp.BaseRate.Mul(decimal.NewFromInt(int64(worked.Days))).Round(2)
	case employee.ContractHonoraire:
		return emp.BaseRate.Mul(worked.Hours).Round(2)
	default:
		return emp.BaseRate.Round(2)
	}
}

// SplitDeductions withholds the statutory rate from gross and splits it into
// the two lines. The second line takes the remainder so the lines always sum
// to the exact total.
func SplitDeductions(gross decimal.Decimal) (map[string]decimal.Decimal, decimal.Decimal) {
	total := gross.Mul(DeductionRate).Round(2)
	retraite := total.Div(decimal.NewFromInt(2)).Round(2)
	securite := total.Sub(retraite)
	return map[string]decimal.Decimal{
		deductionRetraite:        retraite,
		deductionSecuriteSociale: securite,
	}, total
}

// ApplyPayment records a disbursement on the bulletin and recomputes its
// payment status. The balance can never go negative.
func ApplyPayment(b *payroll.Bulletin, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return payroll.ErrInvalidPaymentAmount
	}
	if b.ResteAPayer.IsZero() {
		return payroll.ErrBulletinAlreadyPaid
	}
	if amount.GreaterThan(b.ResteAPayer) {
		return payroll.ErrPaymentExceedsBalance
	}

	b.MontantPaye = b.MontantPaye.Add(amount)
	b.ResteAPayer = b.SalaireNet.Sub(b.MontantPaye)

	switch {
	case b.ResteAPayer.IsZero():
		b.StatutPaiement = payroll.PaiementPaid
	case b.MontantPaye.IsPositive():
		b.StatutPaiement = payroll.PaiementPartial
	default:
		b.StatutPaiement = payroll.PaiementPending
	}
	return nil
}
