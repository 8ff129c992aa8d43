package repository

import (
	"context"

	"github.com/sjperalta/obra-api/internal/models"
	"gorm.io/gorm"
)

// ContractRepository defines the interface for contract data access
type ContractRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Contract, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error)
	ExistsByContractNo(ctx context.Context, contractNo string) (bool, error)
	Create(ctx context.Context, contract *models.Contract) error
	List(ctx context.Context, query *ContractQuery) ([]models.Contract, int64, error)
}

// ContractQuery extends ListQuery with contract-specific filters
type ContractQuery struct {
	*ListQuery
	ClientID  uint
	UnitID    uint
	ProjectID uint
	Status    string
	PlanType  string
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	// Client, Unit and Project are belongs-to so one joined query loads them all.
	err := r.db.WithContext(ctx).
		Joins("Client").
		Joins("Unit").
		Joins("Project").
		First(&contract, "contracts.id = ?", id).Error
	if err != nil {
		return nil, err
	}

	counts, err := r.installmentCounts(ctx, []uint{contract.ID})
	if err != nil {
		return nil, err
	}
	contract.InstallmentCount = counts[contract.ID]
	return &contract, nil
}

func (r *contractRepository) ExistsByContractNo(ctx context.Context, contractNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("contract_no = ?", contractNo).
		Count(&count).Error
	return count > 0, err
}

func (r *contractRepository) Create(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Omit("Client", "Unit", "Project", "Installments").Create(contract).Error
}

func (r *contractRepository) List(ctx context.Context, query *ContractQuery) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Contract{})

	if query.ClientID > 0 {
		db = db.Where("contracts.client_id = ?", query.ClientID)
	}
	if query.UnitID > 0 {
		db = db.Where("contracts.unit_id = ?", query.UnitID)
	}
	if query.ProjectID > 0 {
		db = db.Where("contracts.project_id = ?", query.ProjectID)
	}
	if query.Status != "" {
		db = db.Where("contracts.status = ?", query.Status)
	}
	if query.PlanType != "" {
		db = db.Where("contracts.plan_type = ?", query.PlanType)
	}

	if query.Filters != nil {
		if val, ok := query.Filters["date_from"]; ok && val != "" {
			db = db.Where("contracts.date >= ?", val)
		}
		if val, ok := query.Filters["date_to"]; ok && val != "" {
			db = db.Where("contracts.date <= ?", val)
		}
	}

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("LEFT JOIN clients ON clients.id = contracts.client_id").
			Where("contracts.contract_no ILIKE ? OR clients.name ILIKE ?", search, search)
	}

	// Count total using a separate session so the main query is not altered by Count()
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = paginate(db, query.ListQuery, map[string]string{
		"date":         "contracts.date",
		"contract_no":  "contracts.contract_no",
		"total_amount": "contracts.total_amount",
		"created_at":   "contracts.created_at",
	}, "contracts.created_at DESC")

	err := db.
		Preload("Client").
		Preload("Unit").
		Preload("Project").
		Find(&contracts).Error
	if err != nil {
		return nil, 0, err
	}

	if len(contracts) > 0 {
		ids := make([]uint, 0, len(contracts))
		for _, c := range contracts {
			ids = append(ids, c.ID)
		}
		counts, err := r.installmentCounts(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range contracts {
			contracts[i].InstallmentCount = counts[contracts[i].ID]
		}
	}

	return contracts, total, nil
}

func (r *contractRepository) installmentCounts(ctx context.Context, contractIDs []uint) (map[uint]int64, error) {
	type result struct {
		ContractID uint
		Total      int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Select("contract_id, COUNT(*) AS total").
		Where("contract_id IN ?", contractIDs).
		Group("contract_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(results))
	for _, res := range results {
		counts[res.ContractID] = res.Total
	}
	return counts, nil
}
