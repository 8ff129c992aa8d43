package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit is a sellable property inside a project (apartment, villa, shop...)
type Unit struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProjectID uint            `gorm:"not null;index" json:"projectId"`
	Code      string          `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name      string          `gorm:"not null" json:"name"`
	Type      string          `gorm:"size:32;not null;default:apartment" json:"type"`
	Area      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"area"`
	Price     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	Status    string          `gorm:"size:16;not null;default:available;index" json:"status"`
	Notes     *string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	// Associations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// TableName specifies the table name for Unit
func (Unit) TableName() string {
	return "units"
}

// Unit status constants
const (
	UnitStatusAvailable = "available"
	UnitStatusSold      = "sold"
	UnitStatusReserved  = "reserved"
	UnitStatusCancelled = "cancelled"
)

// IsAvailable reports whether the unit can be attached to a new contract
func (u *Unit) IsAvailable() bool {
	return u.Status == UnitStatusAvailable
}

// UnitSummary is the compact form embedded in contract responses
type UnitSummary struct {
	ID      uint           `json:"id"`
	Code    string         `json:"code"`
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Project ProjectSummary `json:"project"`
}

// Summary returns the compact form of the unit with its project
func (u *Unit) Summary() UnitSummary {
	return UnitSummary{
		ID:      u.ID,
		Code:    u.Code,
		Name:    u.Name,
		Type:    u.Type,
		Project: u.Project.Summary(),
	}
}

// UnitResponse is the JSON response format for units
type UnitResponse struct {
	ID        uint            `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Area      decimal.Decimal `json:"area"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	Notes     *string         `json:"notes"`
	Project   ProjectSummary  `json:"project"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToResponse converts Unit to UnitResponse
func (u *Unit) ToResponse() UnitResponse {
	return UnitResponse{
		ID:        u.ID,
		Code:      u.Code,
		Name:      u.Name,
		Type:      u.Type,
		Area:      u.Area,
		Price:     u.Price,
		Status:    u.Status,
		Notes:     u.Notes,
		Project:   u.Project.Summary(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
