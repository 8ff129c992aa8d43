package services

import (
	"github.com/sjperalta/obra-api/internal/config"
	"github.com/sjperalta/obra-api/internal/jobs"
	"github.com/sjperalta/obra-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Project     *ProjectService
	Client      *ClientService
	Unit        *UnitService
	Contract    *ContractService
	Installment *InstallmentService
	Audit       *AuditService
	Code        *CodeService
	Job         *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit)
	codeSvc := NewCodeService(repos.Sequence, cfg.ContractNumberPrefix, cfg.CodeNumberWidth)
	installmentSvc := NewInstallmentService(repos.Installment, repos.Contract)
	schedule := NewInstallmentScheduleService(cfg.ScheduleRoundingResidue)

	return &Services{
		Project:     NewProjectService(repos.Project, codeSvc, auditSvc),
		Client:      NewClientService(repos.Client, codeSvc, auditSvc),
		Unit:        NewUnitService(repos.Unit, repos.Project, codeSvc, auditSvc),
		Contract:    NewContractService(repos.Contract, repos.Unit, repos.Tx, codeSvc, schedule),
		Installment: installmentSvc,
		Audit:       auditSvc,
		Code:        codeSvc,
		Job:         NewJobService(worker, installmentSvc),
	}
}
