package models

import (
	"time"
)

// Project groups the units of a development
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"not null" json:"name"`
	Location    *string   `json:"location"`
	Description *string   `gorm:"type:text" json:"description"`
	GUID        string    `gorm:"column:guid;size:36;not null;uniqueIndex" json:"guid"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Associations
	Units []Unit `gorm:"foreignKey:ProjectID" json:"units,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// ProjectSummary is the compact form embedded in other responses
type ProjectSummary struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Summary returns the compact form of the project
func (p *Project) Summary() ProjectSummary {
	return ProjectSummary{ID: p.ID, Code: p.Code, Name: p.Name}
}

// ProjectResponse is the JSON response format for projects
type ProjectResponse struct {
	ID             uint      `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Location       *string   `json:"location"`
	Description    *string   `json:"description"`
	GUID           string    `json:"guid"`
	TotalUnits     int       `json:"totalUnits"`
	AvailableUnits int       `json:"availableUnits"`
	ReservedUnits  int       `json:"reservedUnits"`
	SoldUnits      int       `json:"soldUnits"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToResponse converts Project to ProjectResponse. Unit counts need Units preloaded.
func (p *Project) ToResponse() ProjectResponse {
	var available, reserved, sold int
	for _, unit := range p.Units {
		switch unit.Status {
		case UnitStatusAvailable:
			available++
		case UnitStatusReserved:
			reserved++
		case UnitStatusSold:
			sold++
		}
	}

	return ProjectResponse{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		Location:       p.Location,
		Description:    p.Description,
		GUID:           p.GUID,
		TotalUnits:     len(p.Units),
		AvailableUnits: available,
		ReservedUnits:  reserved,
		SoldUnits:      sold,
		CreatedAt:      p.CreatedAt,
	}
}
