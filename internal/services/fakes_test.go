package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"gorm.io/gorm"
)

var errInjected = errors.New("injected storage fault")

// memStore is the committed state shared by the fake repositories
type memStore struct {
	mu           sync.Mutex
	nextID       uint
	projects     map[uint]models.Project
	clients      map[uint]models.Client
	units        map[uint]models.Unit
	contracts    []models.Contract
	installments []models.Installment
	audits       []models.AuditLog

	// failAt names the transactional step that returns errInjected:
	// "begin", "contract", "unit", "installments", "audit", "commit"
	failAt string
	// unitTaken makes the conditional unit update match no row
	unitTaken bool
	// skipExistsCheck makes ExistsByContractNo always report false
	skipExistsCheck bool
	// failReload makes FindByIDWithDetails fail
	failReload bool
}

func newMemStore() *memStore {
	s := &memStore{
		projects: make(map[uint]models.Project),
		clients:  make(map[uint]models.Client),
		units:    make(map[uint]models.Unit),
	}
	return s
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) seedUnit(status string) models.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := models.Project{ID: s.id(), Code: "PRJ-000001", Name: "Palm Residence"}
	s.projects[project.ID] = project
	client := models.Client{ID: s.id(), Code: "CLI-000001", Name: "Mona Adel"}
	s.clients[client.ID] = client

	unit := models.Unit{
		ID:        s.id(),
		ProjectID: project.ID,
		Code:      "UNT-000001",
		Name:      "Tower A 12",
		Type:      "apartment",
		Status:    status,
		Project:   project,
	}
	s.units[unit.ID] = unit
	return unit
}

func (s *memStore) firstClientID() uint {
	for id := range s.clients {
		return id
	}
	return 0
}

func (s *memStore) unitStatus(id uint) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units[id].Status
}

func (s *memStore) installmentsOf(contractID uint) []models.Installment {
	var out []models.Installment
	for _, inst := range s.installments {
		if inst.ContractID == contractID {
			out = append(out, inst)
		}
	}
	return out
}

// memContractRepo reads and writes committed contracts
type memContractRepo struct {
	repository.ContractRepository
	store *memStore
}

func (r *memContractRepo) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.contracts {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memContractRepo) FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error) {
	if r.store.failReload {
		return nil, errInjected
	}
	contract, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	contract.Client = r.store.clients[contract.ClientID]
	contract.Unit = r.store.units[contract.UnitID]
	contract.Project = r.store.projects[contract.ProjectID]
	contract.InstallmentCount = int64(len(r.store.installmentsOf(contract.ID)))
	return contract, nil
}

func (r *memContractRepo) ExistsByContractNo(ctx context.Context, contractNo string) (bool, error) {
	if r.store.skipExistsCheck {
		return false, nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.contracts {
		if c.ContractNo == contractNo {
			return true, nil
		}
	}
	return false, nil
}

// memUnitRepo reads committed units
type memUnitRepo struct {
	repository.UnitRepository
	store *memStore
}

func (r *memUnitRepo) FindByID(ctx context.Context, id uint) (*models.Unit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	unit, ok := r.store.units[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &unit, nil
}

func (r *memUnitRepo) TransitionStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	unit, ok := r.store.units[id]
	if !ok || unit.Status != from {
		return false, nil
	}
	unit.Status = to
	r.store.units[id] = unit
	return true, nil
}

// memTxManager hands out units of work that stage writes until Commit
type memTxManager struct {
	store *memStore
	began int
}

func (m *memTxManager) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	if m.store.failAt == "begin" {
		return nil, errInjected
	}
	m.began++
	return &memUnitOfWork{store: m.store, unitStatus: make(map[uint]string)}, nil
}

type memUnitOfWork struct {
	store        *memStore
	contracts    []models.Contract
	unitStatus   map[uint]string
	installments []models.Installment
	audits       []models.AuditLog
	closed       bool
	committed    bool
}

func (u *memUnitOfWork) Contracts() repository.ContractRepository {
	return &stagedContractRepo{uow: u}
}

func (u *memUnitOfWork) Units() repository.UnitRepository {
	return &stagedUnitRepo{uow: u}
}

func (u *memUnitOfWork) Installments() repository.InstallmentRepository {
	return &stagedInstallmentRepo{uow: u}
}

func (u *memUnitOfWork) Audits() repository.AuditRepository {
	return &stagedAuditRepo{uow: u}
}

func (u *memUnitOfWork) Commit() error {
	if u.closed {
		return repository.ErrTxClosed
	}
	u.closed = true
	if u.store.failAt == "commit" {
		return errInjected
	}

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, c := range u.contracts {
		c.CreatedAt = now
		s.contracts = append(s.contracts, c)
	}
	for id, status := range u.unitStatus {
		unit := s.units[id]
		unit.Status = status
		s.units[id] = unit
	}
	s.installments = append(s.installments, u.installments...)
	s.audits = append(s.audits, u.audits...)
	u.committed = true
	return nil
}

func (u *memUnitOfWork) Rollback() error {
	if u.closed {
		return repository.ErrTxClosed
	}
	u.closed = true
	return nil
}

type stagedContractRepo struct {
	repository.ContractRepository
	uow *memUnitOfWork
}

func (r *stagedContractRepo) Create(ctx context.Context, contract *models.Contract) error {
	s := r.uow.store
	if s.failAt == "contract" {
		return errInjected
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contracts {
		if c.ContractNo == contract.ContractNo {
			return gorm.ErrDuplicatedKey
		}
	}
	contract.ID = s.id()
	r.uow.contracts = append(r.uow.contracts, *contract)
	return nil
}

type stagedUnitRepo struct {
	repository.UnitRepository
	uow *memUnitOfWork
}

func (r *stagedUnitRepo) TransitionStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	s := r.uow.store
	if s.failAt == "unit" {
		return false, errInjected
	}
	if s.unitTaken {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, staged := r.uow.unitStatus[id]
	if !staged {
		unit, ok := s.units[id]
		if !ok {
			return false, nil
		}
		current = unit.Status
	}
	if current != from {
		return false, nil
	}
	r.uow.unitStatus[id] = to
	return true, nil
}

type stagedInstallmentRepo struct {
	repository.InstallmentRepository
	uow *memUnitOfWork
}

func (r *stagedInstallmentRepo) CreateBatch(ctx context.Context, installments []models.Installment) error {
	if r.uow.store.failAt == "installments" {
		return errInjected
	}
	r.uow.installments = append(r.uow.installments, installments...)
	return nil
}

type stagedAuditRepo struct {
	repository.AuditRepository
	uow *memUnitOfWork
}

func (r *stagedAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if r.uow.store.failAt == "audit" {
		return errInjected
	}
	r.uow.audits = append(r.uow.audits, *entry)
	return nil
}

// stubNumbers returns fixed contract numbers in order
type stubNumbers struct {
	numbers []string
	err     error
	calls   int
}

func (g *stubNumbers) NextContractNo(ctx context.Context) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	n := g.numbers[g.calls%len(g.numbers)]
	g.calls++
	return n, nil
}

// mockSequenceRepository counts from 1 per sequence
type mockSequenceRepository struct {
	values   map[string]int64
	prefixes map[string]string
	err      error
}

func newMockSequenceRepository() *mockSequenceRepository {
	return &mockSequenceRepository{values: make(map[string]int64), prefixes: make(map[string]string)}
}

func (m *mockSequenceRepository) Next(ctx context.Context, name, prefix string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.values[name]++
	m.prefixes[name] = prefix
	return m.values[name], nil
}

// mockAuditRepository records created entries
type mockAuditRepository struct {
	repository.AuditRepository
	entries []models.AuditLog
	err     error
}

func (m *mockAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	entry.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, *entry)
	return nil
}

// memCache is a cache.Store that round-trips values through JSON like Redis does
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failGet bool
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return false, errInjected
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}
