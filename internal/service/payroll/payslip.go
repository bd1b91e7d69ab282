package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/paietrack/paietrack-backend-go/internal/domain/payroll"
)

// payslipTemplate is the printable bulletin. Kept self-contained so the
// browser's print-to-PDF needs no assets.
var payslipTemplate = template.Must(template.New("payslip").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Bulletin de paie {{.Numero}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
  h1 { font-size: 20px; border-bottom: 2px solid #222; padding-bottom: 8px; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #ddd; }
  td.amount, th.amount { text-align: right; }
  .total td { font-weight: bold; border-top: 2px solid #222; }
  .meta { margin-top: 8px; color: #555; }
</style>
</head>
<body>
<h1>Bulletin de paie</h1>
<p class="meta">
  {{.CompanyName}}<br>
  Bulletin {{.Numero}} &mdash; {{.PeriodStart}} au {{.PeriodEnd}}<br>
  {{.EmployeeName}}{{if .ContractType}} ({{.ContractType}}){{end}}
</p>
<table>
  <tr><th>Libell&eacute;</th><th class="amount">Montant ({{.Currency}})</th></tr>
  <tr><td>Salaire brut</td><td class="amount">{{.SalaireBrut}}</td></tr>
  {{range .Deductions}}
  <tr><td>{{.Label}}</td><td class="amount">-{{.Amount}}</td></tr>
  {{end}}
  <tr class="total"><td>Salaire net</td><td class="amount">{{.SalaireNet}}</td></tr>
  <tr><td>Montant pay&eacute;</td><td class="amount">{{.MontantPaye}}</td></tr>
  <tr><td>Reste &agrave; payer</td><td class="amount">{{.ResteAPayer}}</td></tr>
</table>
<p class="meta">Jours travaill&eacute;s : {{.WorkedDays}} &mdash; Heures : {{.WorkedHours}} &mdash; Statut : {{.StatutPaiement}}</p>
</body>
</html>
`))

type payslipDeduction struct {
	Label  string
	Amount string
}

type payslipData struct {
	CompanyName    string
	Currency       string
	Numero         string
	PeriodStart    string
	PeriodEnd      string
	EmployeeName   string
	ContractType   string
	SalaireBrut    string
	Deductions     []payslipDeduction
	SalaireNet     string
	MontantPaye    string
	ResteAPayer    string
	StatutPaiement string
	WorkedDays     int
	WorkedHours    string
}

// RenderPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) RenderPayslip(ctx context.Context, bulletinID string) ([]byte, error) {
	companyID, _, err := actorFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	b, err := s.BulletinRepository.GetByID(ctx, companyID, bulletinID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrBulletinNotFound
		}
		return nil, fmt.Errorf("failed to get bulletin: %w", err)
	}

	run, err := s.PayRunRepository.GetByID(ctx, companyID, b.PayRunID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pay run: %w", err)
	}

	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	data := payslipData{
		CompanyName:    comp.Name,
		Currency:       comp.Currency,
		Numero:         b.Numero,
		PeriodStart:    run.PeriodStart.Format("02/01/2006"),
		PeriodEnd:      run.PeriodEnd.Format("02/01/2006"),
		SalaireBrut:    formatAmount(b.SalaireBrut),
		SalaireNet:     formatAmount(b.SalaireNet),
		MontantPaye:    formatAmount(b.MontantPaye),
		ResteAPayer:    formatAmount(b.ResteAPayer),
		StatutPaiement: string(b.StatutPaiement),
		WorkedDays:     b.WorkedDays,
		WorkedHours:    b.WorkedHours.String(),
	}
	if b.EmployeeName != nil {
		data.EmployeeName = *b.EmployeeName
	}
	if b.ContractType != nil {
		data.ContractType = string(*b.ContractType)
	}

	labels := make([]string, 0, len(b.Deductions))
	for label := range b.Deductions {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		data.Deductions = append(data.Deductions, payslipDeduction{
			Label:  deductionDisplayName(label),
			Amount: formatAmount(b.Deductions[label]),
		})
	}

	var buf bytes.Buffer
	if err := payslipTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func deductionDisplayName(key string) string {
	switch key {
	case deductionRetraite:
		return "Retraite"
	case deductionSecuriteSociale:
		return "Sécurité sociale"
	default:
		return key
	}
}
