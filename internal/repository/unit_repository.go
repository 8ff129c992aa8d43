package repository

import (
	"context"

	"github.com/sjperalta/obra-api/internal/models"
	"gorm.io/gorm"
)

// UnitRepository defines the interface for unit data access
type UnitRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Unit, error)
	Create(ctx context.Context, unit *models.Unit) error
	List(ctx context.Context, query *UnitQuery) ([]models.Unit, int64, error)
	// TransitionStatus moves the unit to status `to` only if it is still in `from`.
	// It reports false when no row matched.
	TransitionStatus(ctx context.Context, id uint, from, to string) (bool, error)
}

// UnitQuery extends ListQuery with unit-specific filters
type UnitQuery struct {
	*ListQuery
	ProjectID uint
	Status    string
	Type      string
}

type unitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) FindByID(ctx context.Context, id uint) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.WithContext(ctx).Joins("Project").First(&unit, "units.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) Create(ctx context.Context, unit *models.Unit) error {
	return r.db.WithContext(ctx).Omit("Project").Create(unit).Error
}

func (r *unitRepository) List(ctx context.Context, query *UnitQuery) ([]models.Unit, int64, error) {
	var units []models.Unit
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Unit{})

	if query.ProjectID > 0 {
		db = db.Where("units.project_id = ?", query.ProjectID)
	}
	if query.Status != "" {
		db = db.Where("units.status = ?", query.Status)
	}
	if query.Type != "" {
		db = db.Where("units.type = ?", query.Type)
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("units.name ILIKE ? OR units.code ILIKE ?", search, search)
	}

	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = paginate(db, query.ListQuery, map[string]string{
		"name":       "units.name",
		"code":       "units.code",
		"price":      "units.price",
		"created_at": "units.created_at",
	}, "units.created_at DESC")

	err := db.Joins("Project").Find(&units).Error
	return units, total, err
}

func (r *unitRepository) TransitionStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	result := guardedStatusUpdate(r.db.WithContext(ctx), id, from, to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// guardedStatusUpdate only matches the row while it is still in `from`, so two
// concurrent transitions cannot both succeed.
func guardedStatusUpdate(db *gorm.DB, id uint, from, to string) *gorm.DB {
	return db.Model(&models.Unit{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
}
