package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only record of a state-changing action
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Action    string         `gorm:"size:50;not null" json:"action"`                       // CREATE, UPDATE, TRANSITION
	Entity    string         `gorm:"size:50;not null;index:idx_audit_entity" json:"entity"` // Contract, Unit, Client, Project
	EntityID  uint           `gorm:"index:idx_audit_entity" json:"entityId"`
	Metadata  datatypes.JSON `json:"metadata"`
	IPAddress string         `gorm:"size:45" json:"ipAddress"`
	UserAgent string         `gorm:"size:255" json:"userAgent"`
	RequestID string         `gorm:"size:64" json:"requestId"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action constants
const (
	AuditActionCreate     = "CREATE"
	AuditActionUpdate     = "UPDATE"
	AuditActionTransition = "TRANSITION"
)

// Audit entity names
const (
	AuditEntityContract = "Contract"
	AuditEntityUnit     = "Unit"
	AuditEntityClient   = "Client"
	AuditEntityProject  = "Project"
)

// NewAuditLog builds an entry with metadata marshalled to JSON.
// Unmarshalable metadata is stored as null rather than failing the action.
func NewAuditLog(action, entity string, entityID uint, metadata any) *AuditLog {
	entry := &AuditLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: datatypes.JSON("null"),
	}
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}
	return entry
}

// ContractAuditMetadata is the metadata blob recorded when a contract is issued
type ContractAuditMetadata struct {
	ContractNo   string `json:"contractNo"`
	ClientID     uint   `json:"clientId"`
	UnitID       uint   `json:"unitId"`
	Installments int    `json:"installments"`
}
