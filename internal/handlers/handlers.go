package handlers

import (
	"github.com/sjperalta/obra-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Project  *ProjectHandler
	Client   *ClientHandler
	Unit     *UnitHandler
	Contract *ContractHandler
	Audit    *AuditHandler
	Job      *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Project:  NewProjectHandler(svcs.Project),
		Client:   NewClientHandler(svcs.Client),
		Unit:     NewUnitHandler(svcs.Unit),
		Contract: NewContractHandler(svcs.Contract, svcs.Installment),
		Audit:    NewAuditHandler(svcs.Audit),
		Job:      NewJobHandler(svcs.Job),
	}
}
