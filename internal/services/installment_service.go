package services

import (
	"context"
	"errors"
	"time"

	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"github.com/sjperalta/obra-api/pkg/logger"
	"gorm.io/gorm"
)

type InstallmentService struct {
	repo         repository.InstallmentRepository
	contractRepo repository.ContractRepository
	now          func() time.Time
}

func NewInstallmentService(repo repository.InstallmentRepository, contractRepo repository.ContractRepository) *InstallmentService {
	return &InstallmentService{repo: repo, contractRepo: contractRepo, now: time.Now}
}

// ListByContract returns the schedule of a contract ordered by installment number
func (s *InstallmentService) ListByContract(ctx context.Context, contractID uint) ([]models.Installment, error) {
	if _, err := s.contractRepo.FindByID(ctx, contractID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.repo.FindByContract(ctx, contractID)
}

// MarkOverdue flags pending installments due before asOf's calendar date
func (s *InstallmentService) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	return s.repo.MarkOverdue(ctx, DateOnly(asOf))
}

// SweepOverdue is the scheduled job body
func (s *InstallmentService) SweepOverdue(ctx context.Context) error {
	updated, err := s.MarkOverdue(ctx, s.now())
	if err != nil {
		return err
	}
	if updated > 0 {
		logger.Info("installments marked overdue", "count", updated)
	}
	return nil
}
