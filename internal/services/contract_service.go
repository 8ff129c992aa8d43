package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/obra-api/internal/cache"
	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"github.com/sjperalta/obra-api/internal/statemachine"
	"github.com/sjperalta/obra-api/pkg/logger"
	"gorm.io/gorm"
)

// CreateContractInput is a contract request after transport decoding
type CreateContractInput struct {
	ContractNo  string
	Date        time.Time
	ClientID    uint
	UnitID      uint
	TotalAmount decimal.Decimal
	DownPayment decimal.Decimal
	Discount    decimal.Decimal
	Commission  decimal.Decimal
	Months      int
	PlanType    string
	Notes       *string
}

func (in *CreateContractInput) normalize() {
	in.ContractNo = strings.TrimSpace(in.ContractNo)
	in.PlanType = strings.ToUpper(strings.TrimSpace(in.PlanType))
	if !in.Date.IsZero() {
		in.Date = DateOnly(in.Date)
	}
	if in.Notes != nil {
		trimmed := strings.TrimSpace(*in.Notes)
		if trimmed == "" {
			in.Notes = nil
		} else {
			in.Notes = &trimmed
		}
	}
}

// Validate checks required fields and ranges
// MaxContractMonths caps the installment count of a single contract.
const MaxContractMonths = 600

// Money columns are decimal(15,2).
var maxMoneyAmount = decimal.New(1, 13)

func (in *CreateContractInput) Validate() error {
	verr := NewValidationError()

	if in.Date.IsZero() {
		verr.Add("date", "is required")
	}
	if in.ClientID == 0 {
		verr.Add("clientId", "is required")
	}
	if in.UnitID == 0 {
		verr.Add("unitId", "is required")
	}
	if !in.TotalAmount.IsPositive() {
		verr.Add("totalAmount", "must be greater than 0")
	}
	if in.DownPayment.IsNegative() {
		verr.Add("downPayment", "must be greater than or equal to 0")
	}
	if in.Discount.IsNegative() {
		verr.Add("discount", "must be greater than or equal to 0")
	}
	if in.Commission.IsNegative() {
		verr.Add("commission", "must be greater than or equal to 0")
	}
	if in.Months <= 0 {
		verr.Add("months", "must be greater than 0")
	} else if in.Months > MaxContractMonths {
		verr.Add("months", fmt.Sprintf("must be at most %d", MaxContractMonths))
	}
	for field, amount := range map[string]decimal.Decimal{
		"totalAmount": in.TotalAmount,
		"downPayment": in.DownPayment,
		"discount":    in.Discount,
		"commission":  in.Commission,
	} {
		if amount.Abs().GreaterThanOrEqual(maxMoneyAmount) {
			verr.Add(field, "exceeds the maximum amount of 9999999999999.99")
		}
	}
	if _, ok := models.CadenceMonths(in.PlanType); !ok {
		verr.Add("planType", fmt.Sprintf("must be one of %s, %s, %s",
			models.PlanTypeMonthly, models.PlanTypeQuarterly, models.PlanTypeYearly))
	}

	// The amortized remainder must be positive
	if !verr.HasErrors() && !in.TotalAmount.Sub(in.DownPayment).Sub(in.Discount).IsPositive() {
		verr.Add("downPayment", "downPayment plus discount must be less than totalAmount")
	}

	return verr.OrNil()
}

type ContractService struct {
	repo     repository.ContractRepository
	unitRepo repository.UnitRepository
	tx       repository.TxManager
	codes    ContractNumberGenerator
	schedule *InstallmentScheduleService
	cache    cache.Store
	cacheTTL time.Duration
}

// cachedContract carries the fields of a hydrated contract that JSON would drop
type cachedContract struct {
	Contract         models.Contract `json:"contract"`
	InstallmentCount int64           `json:"installmentCount"`
}

func contractCacheKey(id uint) string {
	return fmt.Sprintf("contract:%d", id)
}

func NewContractService(
	repo repository.ContractRepository,
	unitRepo repository.UnitRepository,
	tx repository.TxManager,
	codes ContractNumberGenerator,
	schedule *InstallmentScheduleService,
) *ContractService {
	return &ContractService{
		repo:     repo,
		unitRepo: unitRepo,
		tx:       tx,
		codes:    codes,
		schedule: schedule,
	}
}

// UseCache enables a read-through cache for hydrated contracts. Issued
// contracts are not edited, so entries only expire.
func (s *ContractService) UseCache(store cache.Store, ttl time.Duration) {
	s.cache = store
	s.cacheTTL = ttl
}

// FindByIDWithDetails gets a contract with client, unit, project and installment count
func (s *ContractService) FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error) {
	if s.cache != nil {
		var hit cachedContract
		found, err := s.cache.Get(ctx, contractCacheKey(id), &hit)
		if err != nil {
			logger.FromContext(ctx).Warn("contract cache read failed", "contract_id", id, "error", err)
		}
		if found {
			hit.Contract.InstallmentCount = hit.InstallmentCount
			return &hit.Contract, nil
		}
	}

	contract, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.remember(ctx, contract)
	return contract, nil
}

func (s *ContractService) remember(ctx context.Context, contract *models.Contract) {
	if s.cache == nil {
		return
	}
	entry := cachedContract{Contract: *contract, InstallmentCount: contract.InstallmentCount}
	if err := s.cache.Set(ctx, contractCacheKey(contract.ID), entry, s.cacheTTL); err != nil {
		logger.FromContext(ctx).Warn("contract cache write failed", "contract_id", contract.ID, "error", err)
	}
}

func (s *ContractService) List(ctx context.Context, query *repository.ContractQuery) ([]models.Contract, int64, error) {
	return s.repo.List(ctx, query)
}

// Create issues a contract: it validates the request, then in one transaction
// creates the contract, marks the unit sold, inserts the installment schedule
// and appends the audit entry. Nothing persists unless every step succeeds.
func (s *ContractService) Create(ctx context.Context, input CreateContractInput, meta RequestMeta) (*models.Contract, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	contractNo, err := s.resolveContractNo(ctx, input.ContractNo)
	if err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.FindByID(ctx, input.UnitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("load unit %d: %w", input.UnitID, err)
	}
	if !statemachine.NewUnitFSM(unit).Can(statemachine.UnitEventSell) {
		return nil, fmt.Errorf("%w: unit %s is %s", ErrUnitUnavailable, unit.Code, unit.Status)
	}

	contract := &models.Contract{
		ContractNo:  contractNo,
		Date:        input.Date,
		ClientID:    input.ClientID,
		UnitID:      unit.ID,
		ProjectID:   unit.ProjectID,
		TotalAmount: input.TotalAmount,
		DownPayment: input.DownPayment,
		Discount:    input.Discount,
		Commission:  input.Commission,
		Months:      input.Months,
		PlanType:    input.PlanType,
		Status:      models.ContractStatusActive,
		Notes:       input.Notes,
	}

	installments, err := s.issue(ctx, contract, unit, meta)
	if err != nil {
		logger.FromContext(ctx).Error("contract issuance rolled back",
			"contract_no", contractNo, "unit_id", unit.ID, "error", err)
		return nil, err
	}

	logger.FromContext(ctx).Info("contract issued",
		"contract_id", contract.ID, "contract_no", contract.ContractNo,
		"unit_id", unit.ID, "installments", len(installments))

	created, err := s.repo.FindByIDWithDetails(ctx, contract.ID)
	if err != nil {
		// Already committed; answer with what we have rather than report a failure.
		logger.FromContext(ctx).Warn("reload after issuance failed",
			"contract_id", contract.ID, "error", err)
		unit.Status = models.UnitStatusSold
		contract.Unit = *unit
		contract.Project = unit.Project
		contract.InstallmentCount = int64(len(installments))
		return contract, nil
	}
	s.remember(ctx, created)
	return created, nil
}

func (s *ContractService) resolveContractNo(ctx context.Context, requested string) (string, error) {
	contractNo := requested
	if contractNo == "" {
		generated, err := s.codes.NextContractNo(ctx)
		if err != nil {
			return "", err
		}
		contractNo = generated
	}

	exists, err := s.repo.ExistsByContractNo(ctx, contractNo)
	if err != nil {
		return "", fmt.Errorf("check contract number: %w", err)
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateContractNumber, contractNo)
	}
	return contractNo, nil
}

// issue runs the transactional phase against one unit of work
func (s *ContractService) issue(ctx context.Context, contract *models.Contract, unit *models.Unit, meta RequestMeta) (installments []models.Installment, err error) {
	uow, err := s.tx.Begin(ctx)
	if err != nil {
		return nil, txFailure("begin", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := uow.Rollback(); rbErr != nil && !errors.Is(rbErr, repository.ErrTxClosed) {
			logger.FromContext(ctx).Error("rollback failed", "error", rbErr)
		}
	}()

	if err := uow.Contracts().Create(ctx, contract); err != nil {
		if repository.IsUniqueViolation(err, "contract_no") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateContractNumber, contract.ContractNo)
		}
		return nil, txFailure("create contract", err)
	}

	sold, err := uow.Units().TransitionStatus(ctx, unit.ID, models.UnitStatusAvailable, models.UnitStatusSold)
	if err != nil {
		return nil, txFailure("mark unit sold", err)
	}
	if !sold {
		return nil, fmt.Errorf("%w: unit %s was taken by another contract", ErrUnitUnavailable, unit.Code)
	}

	installments, err = s.schedule.Generate(contract)
	if err != nil {
		return nil, txFailure("compute schedule", err)
	}

	if err := uow.Installments().CreateBatch(ctx, installments); err != nil {
		return nil, txFailure("insert installments", err)
	}

	entry := models.NewAuditLog(models.AuditActionCreate, models.AuditEntityContract, contract.ID,
		models.ContractAuditMetadata{
			ContractNo:   contract.ContractNo,
			ClientID:     contract.ClientID,
			UnitID:       contract.UnitID,
			Installments: len(installments),
		})
	meta.apply(entry)
	if err := uow.Audits().Create(ctx, entry); err != nil {
		return nil, txFailure("append audit entry", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, txFailure("commit", err)
	}
	committed = true

	return installments, nil
}
