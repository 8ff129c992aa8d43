package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"github.com/sjperalta/obra-api/internal/statemachine"
	"gorm.io/gorm"
)

type UnitService struct {
	repo        repository.UnitRepository
	projectRepo repository.ProjectRepository
	codes       *CodeService
	auditSvc    *AuditService
}

func NewUnitService(repo repository.UnitRepository, projectRepo repository.ProjectRepository, codes *CodeService, auditSvc *AuditService) *UnitService {
	return &UnitService{repo: repo, projectRepo: projectRepo, codes: codes, auditSvc: auditSvc}
}

func (s *UnitService) FindByID(ctx context.Context, id uint) (*models.Unit, error) {
	unit, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return unit, err
}

func (s *UnitService) List(ctx context.Context, query *repository.UnitQuery) ([]models.Unit, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *UnitService) Create(ctx context.Context, unit *models.Unit, meta RequestMeta) error {
	unit.Name = strings.TrimSpace(unit.Name)
	unit.Code = strings.TrimSpace(unit.Code)
	if unit.Status == "" {
		unit.Status = models.UnitStatusAvailable
	}
	if unit.Type == "" {
		unit.Type = "apartment"
	}

	verr := NewValidationError()
	if unit.Name == "" {
		verr.Add("name", "is required")
	}
	if unit.ProjectID == 0 {
		verr.Add("projectId", "is required")
	}
	if unit.Price.IsNegative() {
		verr.Add("price", "must be greater than or equal to 0")
	}
	if unit.Area.IsNegative() {
		verr.Add("area", "must be greater than or equal to 0")
	}
	switch unit.Status {
	case models.UnitStatusAvailable, models.UnitStatusReserved, models.UnitStatusCancelled:
	case models.UnitStatusSold:
		verr.Add("status", "units are sold by issuing a contract")
	default:
		verr.Add("status", "is not a valid unit status")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	project, err := s.projectRepo.FindByID(ctx, unit.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verr.Add("projectId", "project not found")
			return verr
		}
		return err
	}

	if unit.Code == "" {
		code, err := s.codes.NextUnitCode(ctx)
		if err != nil {
			return err
		}
		unit.Code = code
	}

	if err := s.repo.Create(ctx, unit); err != nil {
		if repository.IsUniqueViolation(err, "code") {
			verr.Add("code", "is already taken")
			return verr
		}
		return err
	}
	project.Units = nil
	unit.Project = *project

	s.auditSvc.LogQuietly(ctx, meta, models.AuditActionCreate, models.AuditEntityUnit, unit.ID,
		map[string]any{"code": unit.Code, "projectId": unit.ProjectID, "status": unit.Status})
	return nil
}

// Transition fires a status event on a unit. Selling happens only through contract issuance.
func (s *UnitService) Transition(ctx context.Context, id uint, event string, meta RequestMeta) (*models.Unit, error) {
	if !statemachine.IsKnownEvent(event) {
		verr := NewValidationError()
		verr.Add("event", fmt.Sprintf("unknown unit event %q", event))
		return nil, verr
	}
	if event == statemachine.UnitEventSell {
		verr := NewValidationError()
		verr.Add("event", "units are sold by issuing a contract")
		return nil, verr
	}

	unit, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from, to, err := statemachine.NewUnitFSM(unit).Fire(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	ok, err := s.repo.TransitionStatus(ctx, unit.ID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: unit %s changed status concurrently", ErrInvalidState, unit.Code)
	}

	s.auditSvc.LogQuietly(ctx, meta, models.AuditActionTransition, models.AuditEntityUnit, unit.ID,
		map[string]any{"event": event, "from": from, "to": to})
	return unit, nil
}
