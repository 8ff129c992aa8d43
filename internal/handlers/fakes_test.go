package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sjperalta/obra-api/internal/config"
	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"github.com/sjperalta/obra-api/internal/services"
	"gorm.io/gorm"
)

// fakeStore backs every repository the contract endpoints touch
type fakeStore struct {
	mu               sync.Mutex
	units            map[uint]*models.Unit
	contracts        map[uint]*models.Contract
	installments     []models.Installment
	audits           []models.AuditLog
	failInstallments bool
	nextNo           int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		units:     make(map[uint]*models.Unit),
		contracts: make(map[uint]*models.Contract),
	}
}

func (s *fakeStore) addUnit(id uint, status string) {
	s.units[id] = &models.Unit{
		ID:        id,
		ProjectID: 7,
		Code:      fmt.Sprintf("UNT-%06d", id),
		Name:      fmt.Sprintf("Unit %d", id),
		Type:      "apartment",
		Status:    status,
		Project:   models.Project{ID: 7, Code: "PRJ-000007", Name: "Torre Norte"},
	}
}

func (s *fakeStore) NextContractNo(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNo++
	return services.FormatCode("CON", 6, int64(s.nextNo)), nil
}

type fakeContracts struct{ *fakeStore }

func (r fakeContracts) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contract, ok := r.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *contract
	return &copied, nil
}

func (r fakeContracts) FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error) {
	contract, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if unit, ok := r.units[contract.UnitID]; ok {
		contract.Unit = *unit
		contract.Project = unit.Project
	}
	contract.Client = models.Client{ID: contract.ClientID, Code: "CLI-000001", Name: "Ana Torres"}
	for _, inst := range r.installments {
		if inst.ContractID == id {
			contract.InstallmentCount++
		}
	}
	return contract, nil
}

func (r fakeContracts) ExistsByContractNo(ctx context.Context, contractNo string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.contracts {
		if c.ContractNo == contractNo {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeContracts) Create(ctx context.Context, contract *models.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	contract.ID = uint(len(r.contracts) + 1)
	contract.CreatedAt = time.Now()
	copied := *contract
	r.contracts[contract.ID] = &copied
	return nil
}

func (r fakeContracts) List(ctx context.Context, query *repository.ContractQuery) ([]models.Contract, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Contract
	for _, c := range r.contracts {
		if query.ClientID != 0 && c.ClientID != query.ClientID {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeUnits struct{ *fakeStore }

func (r fakeUnits) FindByID(ctx context.Context, id uint) (*models.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	unit, ok := r.units[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *unit
	return &copied, nil
}

func (r fakeUnits) Create(ctx context.Context, unit *models.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	unit.ID = uint(len(r.units) + 1)
	copied := *unit
	r.units[unit.ID] = &copied
	return nil
}

func (r fakeUnits) List(ctx context.Context, query *repository.UnitQuery) ([]models.Unit, int64, error) {
	return nil, 0, nil
}

func (r fakeUnits) TransitionStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	unit, ok := r.units[id]
	if !ok || unit.Status != from {
		return false, nil
	}
	unit.Status = to
	return true, nil
}

type fakeInstallments struct{ *fakeStore }

func (r fakeInstallments) CreateBatch(ctx context.Context, installments []models.Installment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInstallments {
		return errors.New("insert installments: connection reset")
	}
	r.installments = append(r.installments, installments...)
	return nil
}

func (r fakeInstallments) FindByContract(ctx context.Context, contractID uint) ([]models.Installment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Installment
	for _, inst := range r.installments {
		if inst.ContractID == contractID {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (r fakeInstallments) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	return 0, nil
}

type fakeAudits struct{ *fakeStore }

func (r fakeAudits) Create(ctx context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audits = append(r.audits, *entry)
	return nil
}

func (r fakeAudits) List(ctx context.Context, query *repository.AuditQuery) ([]models.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.audits, int64(len(r.audits)), nil
}

// fakeUnitOfWork writes straight through; tests that need rollback
// semantics live in the services package.
type fakeUnitOfWork struct {
	store  *fakeStore
	closed bool
}

func (u *fakeUnitOfWork) Contracts() repository.ContractRepository {
	return fakeContracts{u.store}
}
func (u *fakeUnitOfWork) Units() repository.UnitRepository { return fakeUnits{u.store} }
func (u *fakeUnitOfWork) Installments() repository.InstallmentRepository {
	return fakeInstallments{u.store}
}
func (u *fakeUnitOfWork) Audits() repository.AuditRepository { return fakeAudits{u.store} }

func (u *fakeUnitOfWork) Commit() error {
	if u.closed {
		return repository.ErrTxClosed
	}
	u.closed = true
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if u.closed {
		return repository.ErrTxClosed
	}
	u.closed = true
	return nil
}

type fakeTxManager struct{ store *fakeStore }

func (m fakeTxManager) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	return &fakeUnitOfWork{store: m.store}, nil
}

func newTestContractHandler(store *fakeStore) *ContractHandler {
	contractSvc := services.NewContractService(
		fakeContracts{store},
		fakeUnits{store},
		fakeTxManager{store},
		store,
		services.NewInstallmentScheduleService(config.ResidueNone),
	)
	installmentSvc := services.NewInstallmentService(fakeInstallments{store}, fakeContracts{store})
	return NewContractHandler(contractSvc, installmentSvc)
}
