package models

import "time"

// CodeSequence backs the human-readable code generator. One row per sequence name.
type CodeSequence struct {
	Name      string    `gorm:"primaryKey;size:32" json:"name"`
	Prefix    string    `gorm:"size:16;not null" json:"prefix"`
	NextValue int64     `gorm:"not null;default:0" json:"nextValue"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for CodeSequence
func (CodeSequence) TableName() string {
	return "code_sequences"
}

// Sequence names
const (
	SequenceContract = "contract"
	SequenceClient   = "client"
	SequenceUnit     = "unit"
	SequenceProject  = "project"
)
