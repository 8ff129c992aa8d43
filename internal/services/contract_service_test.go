package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/obra-api/internal/config"
	"github.com/sjperalta/obra-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issueDate = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func newTestContractService(store *memStore, codes ContractNumberGenerator) (*ContractService, *memTxManager) {
	tx := &memTxManager{store: store}
	svc := NewContractService(
		&memContractRepo{store: store},
		&memUnitRepo{store: store},
		tx,
		codes,
		NewInstallmentScheduleService(config.ResidueNone),
	)
	return svc, tx
}

func validContractInput(store *memStore, unitID uint) CreateContractInput {
	return CreateContractInput{
		ContractNo:  "CON-2024-001",
		Date:        issueDate,
		ClientID:    store.firstClientID(),
		UnitID:      unitID,
		TotalAmount: decimal.NewFromInt(120000),
		DownPayment: decimal.NewFromInt(20000),
		Months:      10,
		PlanType:    models.PlanTypeMonthly,
	}
}

func TestContractService_Create_IssuesContractWithSchedule(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	svc, _ := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

	meta := RequestMeta{IP: "10.0.0.7", UserAgent: "test-agent", RequestID: "req-1"}
	contract, err := svc.Create(context.Background(), validContractInput(store, unit.ID), meta)
	require.NoError(t, err)

	assert.Equal(t, "CON-2024-001", contract.ContractNo)
	assert.Equal(t, models.ContractStatusActive, contract.Status)
	assert.Equal(t, unit.ProjectID, contract.ProjectID)
	assert.Equal(t, int64(10), contract.InstallmentCount)
	assert.Equal(t, models.UnitStatusSold, store.unitStatus(unit.ID))

	installments := store.installmentsOf(contract.ID)
	require.Len(t, installments, 10)
	expected := decimal.RequireFromString("10000.00")
	for i, inst := range installments {
		assert.Equal(t, i+1, inst.InstallmentNo)
		assert.True(t, expected.Equal(inst.Amount), "installment %d amount %s", inst.InstallmentNo, inst.Amount)
		assert.True(t, inst.PaidAmount.IsZero())
		assert.Equal(t, models.InstallmentStatusPending, inst.Status)
		assert.Equal(t, AddMonths(issueDate, i+1), inst.DueDate)
		assert.Equal(t, contract.ClientID, inst.ClientID)
		assert.Equal(t, unit.ID, inst.UnitID)
	}

	require.Len(t, store.audits, 1)
	entry := store.audits[0]
	assert.Equal(t, models.AuditActionCreate, entry.Action)
	assert.Equal(t, models.AuditEntityContract, entry.Entity)
	assert.Equal(t, contract.ID, entry.EntityID)
	assert.Equal(t, "10.0.0.7", entry.IPAddress)
	assert.Equal(t, "req-1", entry.RequestID)

	var recorded models.ContractAuditMetadata
	require.NoError(t, json.Unmarshal(entry.Metadata, &recorded))
	assert.Equal(t, 10, recorded.Installments)
	assert.Equal(t, "CON-2024-001", recorded.ContractNo)

	resp := contract.ToResponse()
	assert.Equal(t, "Mona Adel", resp.Client.Name)
	assert.Equal(t, "UNT-000001", resp.Unit.Code)
	assert.Equal(t, "PRJ-000001", resp.Unit.Project.Code)
	assert.Equal(t, int64(10), resp.Count.Installments)
}

func TestContractService_Create_GeneratesNumberWhenBlank(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	numbers := &stubNumbers{numbers: []string{"CON-000042"}}
	svc, _ := newTestContractService(store, numbers)

	input := validContractInput(store, unit.ID)
	input.ContractNo = "   "

	contract, err := svc.Create(context.Background(), input, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "CON-000042", contract.ContractNo)
	assert.Equal(t, 1, numbers.calls)
}

func TestContractService_Create_CodeAllocationFailure(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	codes := NewCodeService(&mockSequenceRepository{err: errInjected}, "CON", 6)
	svc, tx := newTestContractService(store, codes)

	input := validContractInput(store, unit.ID)
	input.ContractNo = ""

	_, err := svc.Create(context.Background(), input, RequestMeta{})
	assert.ErrorIs(t, err, ErrCodeAllocation)
	assert.Equal(t, 0, tx.began)
}

func TestContractService_Create_RollsBackOnFault(t *testing.T) {
	steps := []string{"begin", "contract", "unit", "installments", "audit", "commit"}

	for _, step := range steps {
		t.Run(step, func(t *testing.T) {
			store := newMemStore()
			unit := store.seedUnit(models.UnitStatusAvailable)
			store.failAt = step
			svc, _ := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

			contract, err := svc.Create(context.Background(), validContractInput(store, unit.ID), RequestMeta{})
			require.Error(t, err)
			assert.Nil(t, contract)
			assert.ErrorIs(t, err, ErrTransactionFailure)
			assert.False(t, errors.Is(err, ErrInvalidInput))

			assert.Empty(t, store.contracts)
			assert.Empty(t, store.installments)
			assert.Empty(t, store.audits)
			assert.Equal(t, models.UnitStatusAvailable, store.unitStatus(unit.ID))
		})
	}
}

func TestContractService_Create_DuplicateContractNumber(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	store.contracts = append(store.contracts, models.Contract{ID: 900, ContractNo: "CON-2024-001"})
	svc, tx := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

	_, err := svc.Create(context.Background(), validContractInput(store, unit.ID), RequestMeta{})
	assert.ErrorIs(t, err, ErrDuplicateContractNumber)
	assert.Equal(t, 0, tx.began)
	assert.Equal(t, models.UnitStatusAvailable, store.unitStatus(unit.ID))
	assert.Len(t, store.contracts, 1)
	assert.Empty(t, store.installments)
	assert.Empty(t, store.audits)
}

func TestContractService_Create_DuplicateDetectedAtInsert(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	store.contracts = append(store.contracts, models.Contract{ID: 900, ContractNo: "CON-2024-001"})
	store.skipExistsCheck = true
	svc, tx := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

	_, err := svc.Create(context.Background(), validContractInput(store, unit.ID), RequestMeta{})
	assert.ErrorIs(t, err, ErrDuplicateContractNumber)
	assert.Equal(t, 1, tx.began)
	assert.Equal(t, models.UnitStatusAvailable, store.unitStatus(unit.ID))
	assert.Empty(t, store.installments)
}

func TestContractService_Create_SecondContractOnSameUnit(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	svc, _ := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

	first, err := svc.Create(context.Background(), validContractInput(store, unit.ID), RequestMeta{})
	require.NoError(t, err)

	second := validContractInput(store, unit.ID)
	second.ContractNo = "CON-2024-002"
	_, err = svc.Create(context.Background(), second, RequestMeta{})
	assert.ErrorIs(t, err, ErrUnitUnavailable)

	require.Len(t, store.contracts, 1)
	assert.Equal(t, first.ID, store.contracts[0].ID)
	assert.Len(t, store.installmentsOf(first.ID), 10)
	assert.Len(t, store.audits, 1)
	assert.Equal(t, models.UnitStatusSold, store.unitStatus(unit.ID))
}

func TestContractService_Create_UnitTakenInsideTransaction(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	store.unitTaken = true
	svc, _ := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

	_, err := svc.Create(context.Background(), validContractInput(store, unit.ID), RequestMeta{})
	assert.ErrorIs(t, err, ErrUnitUnavailable)
	assert.Empty(t, store.contracts)
	assert.Empty(t, store.installments)
	assert.Empty(t, store.audits)
}

func TestContractService_Create_UnitChecks(t *testing.T) {
	t.Run("missing unit", func(t *testing.T) {
		store := newMemStore()
		store.seedUnit(models.UnitStatusAvailable)
		svc, tx := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

		_, err := svc.Create(context.Background(), validContractInput(store, 9999), RequestMeta{})
		assert.ErrorIs(t, err, ErrUnitNotFound)
		assert.Equal(t, 0, tx.began)
	})

	for _, status := range []string{models.UnitStatusReserved, models.UnitStatusSold, models.UnitStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			store := newMemStore()
			unit := store.seedUnit(status)
			svc, tx := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

			_, err := svc.Create(context.Background(), validContractInput(store, unit.ID), RequestMeta{})
			assert.ErrorIs(t, err, ErrUnitUnavailable)
			assert.Equal(t, 0, tx.began)
			assert.Equal(t, status, store.unitStatus(unit.ID))
		})
	}
}

func TestContractService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *CreateContractInput)
		field  string
	}{
		{"missing date", func(in *CreateContractInput) { in.Date = time.Time{} }, "date"},
		{"missing client", func(in *CreateContractInput) { in.ClientID = 0 }, "clientId"},
		{"missing unit", func(in *CreateContractInput) { in.UnitID = 0 }, "unitId"},
		{"zero total", func(in *CreateContractInput) { in.TotalAmount = decimal.Zero }, "totalAmount"},
		{"negative down payment", func(in *CreateContractInput) { in.DownPayment = decimal.NewFromInt(-1) }, "downPayment"},
		{"negative discount", func(in *CreateContractInput) { in.Discount = decimal.NewFromInt(-5) }, "discount"},
		{"negative commission", func(in *CreateContractInput) { in.Commission = decimal.NewFromInt(-5) }, "commission"},
		{"zero months", func(in *CreateContractInput) { in.Months = 0 }, "months"},
		{"unknown plan", func(in *CreateContractInput) { in.PlanType = "WEEKLY" }, "planType"},
		{"too many months", func(in *CreateContractInput) { in.Months = MaxContractMonths + 1 }, "months"},
		{"total overflows money column", func(in *CreateContractInput) { in.TotalAmount = decimal.New(1, 13) }, "totalAmount"},
		{"commission overflows money column", func(in *CreateContractInput) {
			in.Commission = decimal.RequireFromString("12345678901234.5")
		}, "commission"},
		{"nothing left to finance", func(in *CreateContractInput) {
			in.DownPayment = decimal.NewFromInt(100000)
			in.Discount = decimal.NewFromInt(20000)
		}, "downPayment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			unit := store.seedUnit(models.UnitStatusAvailable)
			numbers := &stubNumbers{numbers: []string{"CON-000001"}}
			svc, tx := newTestContractService(store, numbers)

			input := validContractInput(store, unit.ID)
			tt.mutate(&input)

			_, err := svc.Create(context.Background(), input, RequestMeta{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Details, tt.field)

			assert.Equal(t, 0, tx.began)
			assert.Equal(t, 0, numbers.calls)
			assert.Equal(t, models.UnitStatusAvailable, store.unitStatus(unit.ID))
		})
	}
}

func TestCreateContractInput_ValidateBounds(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)

	input := validContractInput(store, unit.ID)
	input.Months = MaxContractMonths
	input.TotalAmount = decimal.RequireFromString("9999999999999.99")
	input.Commission = decimal.RequireFromString("9999999999999.99")
	assert.NoError(t, input.Validate())
}

func TestContractService_Create_NormalizesPlanType(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	svc, _ := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

	input := validContractInput(store, unit.ID)
	input.PlanType = " quarterly "
	input.Months = 4

	contract, err := svc.Create(context.Background(), input, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.PlanTypeQuarterly, contract.PlanType)

	installments := store.installmentsOf(contract.ID)
	require.Len(t, installments, 4)
	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), installments[3].DueDate)
}

func TestContractService_Create_ReloadFailureStillSucceeds(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	store.failReload = true
	svc, _ := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

	contract, err := svc.Create(context.Background(), validContractInput(store, unit.ID), RequestMeta{})
	require.NoError(t, err)
	assert.NotZero(t, contract.ID)
	assert.Equal(t, int64(10), contract.InstallmentCount)
	assert.Equal(t, "PRJ-000001", contract.ToResponse().Unit.Project.Code)
	assert.Equal(t, models.UnitStatusSold, contract.Unit.Status)
	assert.Len(t, store.contracts, 1)
}

func TestContractService_FindByIDWithDetails_NotFound(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

	_, err := svc.FindByIDWithDetails(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContractService_FindByIDWithDetails_ServedFromCache(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	svc, _ := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})
	contractCache := newMemCache()
	svc.UseCache(contractCache, time.Minute)

	created, err := svc.Create(context.Background(), validContractInput(store, unit.ID), RequestMeta{})
	require.NoError(t, err)
	require.Contains(t, contractCache.entries, contractCacheKey(created.ID))

	store.failReload = true
	cached, err := svc.FindByIDWithDetails(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ContractNo, cached.ContractNo)
	assert.Equal(t, int64(10), cached.InstallmentCount)
	assert.Equal(t, "PRJ-000001", cached.ToResponse().Unit.Project.Code)
	assert.True(t, cached.TotalAmount.Equal(decimal.NewFromInt(120000)))
}

func TestContractService_FindByIDWithDetails_CacheFailureFallsBack(t *testing.T) {
	store := newMemStore()
	unit := store.seedUnit(models.UnitStatusAvailable)
	svc, _ := newTestContractService(store, &stubNumbers{numbers: []string{"CON-000001"}})

	created, err := svc.Create(context.Background(), validContractInput(store, unit.ID), RequestMeta{})
	require.NoError(t, err)

	contractCache := newMemCache()
	contractCache.failGet = true
	svc.UseCache(contractCache, time.Minute)

	found, err := svc.FindByIDWithDetails(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Contains(t, contractCache.entries, contractCacheKey(created.ID))
}
