package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Project     ProjectRepository
	Client      ClientRepository
	Unit        UnitRepository
	Contract    ContractRepository
	Installment InstallmentRepository
	Audit       AuditRepository
	Sequence    SequenceRepository
	Tx          TxManager
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Project:     NewProjectRepository(db),
		Client:      NewClientRepository(db),
		Unit:        NewUnitRepository(db),
		Contract:    NewContractRepository(db),
		Installment: NewInstallmentRepository(db),
		Audit:       NewAuditRepository(db),
		Sequence:    NewSequenceRepository(db),
		Tx:          NewTxManager(db),
	}
}
