package repository

import (
	"context"
	"time"

	"github.com/sjperalta/obra-api/internal/models"
	"gorm.io/gorm"
)

const installmentBatchSize = 100

// InstallmentRepository defines the interface for installment data access
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, installments []models.Installment) error
	FindByContract(ctx context.Context, contractID uint) ([]models.Installment, error)
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) CreateBatch(ctx context.Context, installments []models.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&installments, installmentBatchSize).Error
}

func (r *installmentRepository) FindByContract(ctx context.Context, contractID uint) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("installment_no ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("status = ? AND due_date < ?", models.InstallmentStatusPending, asOf).
		Update("status", models.InstallmentStatusOverdue)
	return result.RowsAffected, result.Error
}
