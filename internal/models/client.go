package models

import (
	"time"
)

// Client is a buyer that can hold contracts
type Client struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Code       string    `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name       string    `gorm:"not null;index" json:"name"`
	Phone      *string   `gorm:"size:32" json:"phone"`
	Email      *string   `gorm:"size:255" json:"email"`
	NationalID *string   `gorm:"column:national_id;size:64;index" json:"nationalId"`
	Address    *string   `json:"address"`
	Notes      *string   `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

// ClientSummary is the compact form embedded in contract responses
type ClientSummary struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Summary returns the compact form of the client
func (c *Client) Summary() ClientSummary {
	return ClientSummary{ID: c.ID, Code: c.Code, Name: c.Name}
}
