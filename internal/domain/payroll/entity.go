package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
)

type PayRunStatus string

const (
	PayRunDraft      PayRunStatus = "DRAFT"
	PayRunInProgress PayRunStatus = "IN_PROGRESS"
	PayRunComplete   PayRunStatus = "COMPLETE"
)

// PayRun groups the bulletins of one pay period for one company.
type PayRun struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	Label           string          `json:"label"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	Status          PayRunStatus    `json:"status"`
	TotalBrut       decimal.Decimal `json:"total_brut"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	EmployeeCount   int             `json:"employee_count"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

type StatutPaiement string

const (
	PaiementPending StatutPaiement = "PENDING"
	PaiementPartial StatutPaiement = "PARTIAL"
	PaiementPaid    StatutPaiement = "PAID"
)

// Bulletin is one employee's payslip inside a pay run. Amounts are kept as
// decimals end to end; rounding happens once, in the calculator.
type Bulletin struct {
	ID             string                     `json:"id"`
	PayRunID       string                     `json:"pay_run_id"`
	EmployeeID     string                     `json:"employee_id"`
	Numero         string                     `json:"numero"`
	SalaireBrut    decimal.Decimal            `json:"salaire_brut"`
	Deductions     map[string]decimal.Decimal `json:"deductions"`
	SalaireNet     decimal.Decimal            `json:"salaire_net"`
	MontantPaye    decimal.Decimal            `json:"montant_paye"`
	ResteAPayer    decimal.Decimal            `json:"reste_a_payer"`
	StatutPaiement StatutPaiement             `json:"statut_paiement"`
	WorkedDays     int                        `json:"worked_days"`
	WorkedHours    decimal.Decimal            `json:"worked_hours"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      *time.Time                 `json:"updated_at,omitempty"`

	// Joined for display, never persisted on the bulletin row.
	EmployeeName *string                `json:"employee_name,omitempty"`
	ContractType *employee.ContractType `json:"contract_type,omitempty"`
}

type PaymentMethod string

const (
	MethodEspeces     PaymentMethod = "ESPECES"
	MethodVirement    PaymentMethod = "VIREMENT"
	MethodOrangeMoney PaymentMethod = "ORANGE_MONEY"
	MethodWave        PaymentMethod = "WAVE"
)

func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodEspeces, MethodVirement, MethodOrangeMoney, MethodWave:
		return true
	}
	return false
}

// Payment is one disbursement against a bulletin. A bulletin can carry
// several partial payments until its balance reaches zero.
type Payment struct {
	ID          string          `json:"id"`
	BulletinID  string          `json:"bulletin_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	Reference   *string         `json:"reference,omitempty"`
	ProcessedBy string          `json:"processed_by"`
	CreatedAt   time.Time       `json:"created_at"`
}
