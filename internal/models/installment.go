package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one scheduled partial payment of a contract
type Installment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ContractID    uint            `gorm:"not null;uniqueIndex:idx_installments_contract_no,priority:1" json:"contractId"`
	ClientID      uint            `gorm:"not null;index" json:"clientId"`
	UnitID        uint            `gorm:"not null;index" json:"unitId"`
	InstallmentNo int             `gorm:"not null;uniqueIndex:idx_installments_contract_no,priority:2" json:"installmentNo"`
	DueDate       time.Time       `gorm:"type:date;not null;index" json:"dueDate"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"paidAmount"`
	Status        string          `gorm:"size:16;not null;default:pending;index" json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TableName specifies the table name for Installment
func (Installment) TableName() string {
	return "installments"
}

// Installment status constants
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusOverdue = "overdue"
	InstallmentStatusPaid    = "paid"
)

// Outstanding returns what is still owed on the installment
func (i *Installment) Outstanding() decimal.Decimal {
	return i.Amount.Sub(i.PaidAmount)
}

// IsOverdue reports whether the installment is unpaid past its due date
func (i *Installment) IsOverdue(asOf time.Time) bool {
	return i.Status != InstallmentStatusPaid && i.DueDate.Before(asOf)
}

// InstallmentResponse is the JSON response format for installments
type InstallmentResponse struct {
	ID            uint            `json:"id"`
	ContractID    uint            `json:"contractId"`
	InstallmentNo int             `json:"installmentNo"`
	DueDate       time.Time       `json:"dueDate"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Status        string          `json:"status"`
}

// ToResponse converts Installment to InstallmentResponse
func (i *Installment) ToResponse() InstallmentResponse {
	return InstallmentResponse{
		ID:            i.ID,
		ContractID:    i.ContractID,
		InstallmentNo: i.InstallmentNo,
		DueDate:       i.DueDate,
		Amount:        i.Amount,
		PaidAmount:    i.PaidAmount,
		Outstanding:   i.Outstanding(),
		Status:        i.Status,
	}
}
