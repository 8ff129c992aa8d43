package repository

import (
	"context"

	"github.com/sjperalta/obra-api/internal/models"
	"gorm.io/gorm"
)

// AuditRepository defines the interface for the append-only audit trail
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, query *AuditQuery) ([]models.AuditLog, int64, error)
}

// AuditQuery extends ListQuery with audit filters
type AuditQuery struct {
	*ListQuery
	Entity   string
	EntityID uint
	Action   string
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, query *AuditQuery) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	db := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if query.Entity != "" {
		db = db.Where("entity = ?", query.Entity)
	}
	if query.EntityID > 0 {
		db = db.Where("entity_id = ?", query.EntityID)
	}
	if query.Action != "" {
		db = db.Where("action = ?", query.Action)
	}

	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = paginate(db, query.ListQuery, nil, "created_at DESC, id DESC")

	err := db.Find(&logs).Error
	return logs, total, err
}
