package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract is a sales agreement binding one client to one unit with a payment plan
type Contract struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ContractNo  string          `gorm:"size:64;not null;uniqueIndex" json:"contractNo"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	ClientID    uint            `gorm:"not null;index" json:"clientId"`
	UnitID      uint            `gorm:"not null;index" json:"unitId"`
	ProjectID   uint            `gorm:"not null;index" json:"projectId"` // copied from the unit at issuance
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"totalAmount"`
	DownPayment decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"downPayment"`
	Discount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"discount"`
	Commission  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"commission"`
	Months      int             `gorm:"not null" json:"months"`
	PlanType    string          `gorm:"size:16;not null" json:"planType"`
	Status      string          `gorm:"size:16;not null;default:active;index" json:"status"`
	Notes       *string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Filled by repository reads, not persisted
	InstallmentCount int64 `gorm:"-" json:"-"`

	// Associations
	Client       Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Unit         Unit          `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Project      Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Installments []Installment `gorm:"foreignKey:ContractID" json:"installments,omitempty"`
}

// TableName specifies the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}

// Contract status constants
const (
	ContractStatusActive    = "active"
	ContractStatusCompleted = "completed"
	ContractStatusCancelled = "cancelled"
)

// Plan type constants
const (
	PlanTypeMonthly   = "MONTHLY"
	PlanTypeQuarterly = "QUARTERLY"
	PlanTypeYearly    = "YEARLY"
)

// CadenceMonths returns how many calendar months separate two installments of a plan
func CadenceMonths(planType string) (int, bool) {
	switch planType {
	case PlanTypeMonthly:
		return 1, true
	case PlanTypeQuarterly:
		return 3, true
	case PlanTypeYearly:
		return 12, true
	}
	return 0, false
}

// FinancedAmount is the part of the price amortized over the installments
func (c *Contract) FinancedAmount() decimal.Decimal {
	return c.TotalAmount.Sub(c.DownPayment).Sub(c.Discount)
}

// ContractCount mirrors the aggregate block of the API response
type ContractCount struct {
	Installments int64 `json:"installments"`
}

// ContractResponse is the JSON response format for contracts
type ContractResponse struct {
	ID          uint            `json:"id"`
	ContractNo  string          `json:"contractNo"`
	Date        time.Time       `json:"date"`
	Client      ClientSummary   `json:"client"`
	Unit        UnitSummary     `json:"unit"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	DownPayment decimal.Decimal `json:"downPayment"`
	Discount    decimal.Decimal `json:"discount"`
	Commission  decimal.Decimal `json:"commission"`
	Months      int             `json:"months"`
	PlanType    string          `json:"planType"`
	Status      string          `json:"status"`
	Notes       *string         `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	Count       ContractCount   `json:"_count"`
}

// ToResponse converts Contract to ContractResponse.
// The project summary comes from the contract's own denormalized project.
func (c *Contract) ToResponse() ContractResponse {
	unit := c.Unit.Summary()
	if c.Project.ID != 0 {
		unit.Project = c.Project.Summary()
	}

	client := c.Client.Summary()
	if client.ID == 0 {
		client.ID = c.ClientID
	}
	if unit.ID == 0 {
		unit.ID = c.UnitID
	}

	return ContractResponse{
		ID:          c.ID,
		ContractNo:  c.ContractNo,
		Date:        c.Date,
		Client:      client,
		Unit:        unit,
		TotalAmount: c.TotalAmount,
		DownPayment: c.DownPayment,
		Discount:    c.Discount,
		Commission:  c.Commission,
		Months:      c.Months,
		PlanType:    c.PlanType,
		Status:      c.Status,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		Count:       ContractCount{Installments: c.InstallmentCount},
	}
}
