package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/domain/payroll"
)

func TestResolveWorkedTotals_FallsBackToDefaults(t *testing.T) {
	rules := attendance.DefaultRules("company-1")

	totals := ResolveWorkedTotals(nil, rules)
	assert.Equal(t, 22, totals.Days)
	assert.True(t, totals.Hours.Equal(decimal.NewFromInt(176)))

	// A summary with no tracked days means attendance was never recorded.
	totals = ResolveWorkedTotals(&attendance.Summary{EmployeeID: "emp-1"}, rules)
	assert.Equal(t, 22, totals.Days)
	assert.True(t, totals.Hours.Equal(decimal.NewFromInt(176)))
}

func TestResolveWorkedTotals_FullyAbsentGetsZero(t *testing.T) {
	rules := attendance.DefaultRules("company-1")

	// The employee was tracked every day and never showed up. The defaults
	// must not apply, otherwise a fully absent day-rate employee would be
	// paid a full month.
	summary := &attendance.Summary{EmployeeID: "emp-1", DaysTracked: 22, DaysPresent: 0, MinutesWorked: 0}
	totals := ResolveWorkedTotals(summary, rules)

	assert.Equal(t, 0, totals.Days)
	assert.True(t, totals.Hours.IsZero())

	journalier := employee.Employee{ContractType: employee.ContractJournalier, BaseRate: decimal.NewFromInt(15000)}
	assert.True(t, ComputeGross(journalier, totals).IsZero())

	honoraire := employee.Employee{ContractType: employee.ContractHonoraire, BaseRate: decimal.NewFromInt(2500)}
	assert.True(t, ComputeGross(honoraire, totals).IsZero())
}

func TestResolveWorkedTotals_FromSummary(t *testing.T) {
	rules := attendance.DefaultRules("company-1")
	summary := &attendance.Summary{EmployeeID: "emp-1", DaysTracked: 20, DaysPresent: 18, MinutesWorked: 8670}

	totals := ResolveWorkedTotals(summary, rules)

	assert.Equal(t, 18, totals.Days)
	assert.True(t, totals.Hours.Equal(decimal.NewFromFloat(144.5)), "got %s", totals.Hours)
}

func TestComputeGross_ByContractType(t *testing.T) {
	worked := WorkedTotals{Days: 20, Hours: decimal.NewFromInt(160)}

	fixe := employee.Employee{ContractType: employee.ContractFixe, BaseRate: decimal.NewFromInt(350000)}
	assert.True(t, ComputeGross(fixe, worked).Equal(decimal.NewFromInt(350000)))

	journalier := employee.Employee{ContractType: employee.ContractJournalier, BaseRate: decimal.NewFromInt(15000)}
	assert.True(t, ComputeGross(journalier, worked).Equal(decimal.NewFromInt(300000)))

	honoraire := employee.Employee{ContractType: employee.ContractHonoraire, BaseRate: decimal.NewFromInt(2500)}
	assert.True(t, ComputeGross(honoraire, worked).Equal(decimal.NewFromInt(400000)))
}

func TestSplitDeductions_SumsToTotal(t *testing.T) {
	deductions, total := SplitDeductions(decimal.NewFromInt(130000))

	assert.True(t, total.Equal(decimal.NewFromInt(6500)))
	assert.True(t, deductions["retraite"].Equal(decimal.NewFromInt(3250)))
	assert.True(t, deductions["securite_sociale"].Equal(decimal.NewFromInt(3250)))
}

func TestSplitDeductions_OddTotal(t *testing.T) {
	// 5% of 333.30 is 16.67, which does not halve evenly. The second line
	// takes the remainder so the lines still sum to the total.
	deductions, total := SplitDeductions(decimal.NewFromFloat(333.30))

	assert.True(t, total.Equal(decimal.NewFromFloat(16.67)), "got %s", total)
	sum := deductions["retraite"].Add(deductions["securite_sociale"])
	assert.True(t, sum.Equal(total), "lines %s + %s != %s", deductions["retraite"], deductions["securite_sociale"], total)
}

func testBulletin(net int64) payroll.Bulletin {
	return payroll.Bulletin{
		SalaireNet:     decimal.NewFromInt(net),
		MontantPaye:    decimal.Zero,
		ResteAPayer:    decimal.NewFromInt(net),
		StatutPaiement: payroll.PaiementPending,
	}
}

func TestApplyPayment_PartialThenPaid(t *testing.T) {
	b := testBulletin(100000)

	err := ApplyPayment(&b, decimal.NewFromInt(40000))
	require.NoError(t, err)
	assert.Equal(t, payroll.PaiementPartial, b.StatutPaiement)
	assert.True(t, b.ResteAPayer.Equal(decimal.NewFromInt(60000)))

	err = ApplyPayment(&b, decimal.NewFromInt(60000))
	require.NoError(t, err)
	assert.Equal(t, payroll.PaiementPaid, b.StatutPaiement)
	assert.True(t, b.ResteAPayer.IsZero())
	assert.True(t, b.MontantPaye.Equal(b.SalaireNet))
}

func TestApplyPayment_RejectsNonPositiveAmounts(t *testing.T) {
	b := testBulletin(100000)

	err := ApplyPayment(&b, decimal.Zero)
	assert.ErrorIs(t, err, payroll.ErrInvalidPaymentAmount)

	err = ApplyPayment(&b, decimal.NewFromInt(-500))
	assert.ErrorIs(t, err, payroll.ErrInvalidPaymentAmount)

	assert.True(t, b.MontantPaye.IsZero())
	assert.Equal(t, payroll.PaiementPending, b.StatutPaiement)
}

func TestApplyPayment_RejectsOverpayment(t *testing.T) {
	b := testBulletin(100000)

	err := ApplyPayment(&b, decimal.NewFromInt(100001))
	assert.ErrorIs(t, err, payroll.ErrPaymentExceedsBalance)
	assert.True(t, b.ResteAPayer.Equal(b.SalaireNet))
}

func TestApplyPayment_RejectsWhenAlreadyPaid(t *testing.T) {
	b := testBulletin(50000)
	require.NoError(t, ApplyPayment(&b, decimal.NewFromInt(50000)))

	err := ApplyPayment(&b, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, payroll.ErrBulletinAlreadyPaid)
}
