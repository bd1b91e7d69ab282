package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	ContractFixe       ContractType = "FIXE"
	ContractJournalier ContractType = "JOURNALIER"
	ContractHonoraire  ContractType = "HONORAIRE"
)

func IsValidContractType(c ContractType) bool {
	switch c {
	case ContractFixe, ContractJournalier, ContractHonoraire:
		return true
	}
	return false
}

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusTerminated Status = "TERMINATED"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusTerminated:
		return true
	}
	return false
}

type Employee struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	FullName     string          `json:"full_name"`
	Position     string          `json:"position"`
	ContractType ContractType    `json:"contract_type"`
	// BaseRate is a monthly salary for FIXE, a day rate for JOURNALIER
	// and an hourly rate for HONORAIRE contracts.
	BaseRate    decimal.Decimal `json:"base_rate"`
	Status      Status          `json:"status"`
	QRToken     string          `json:"qr_token"`
	Email       *string         `json:"email,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	BankDetails *string         `json:"bank_details,omitempty"`
	HiredAt     *time.Time      `json:"hired_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}
