package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"gorm.io/gorm"
)

type ProjectService struct {
	repo     repository.ProjectRepository
	codes    *CodeService
	auditSvc *AuditService
}

func NewProjectService(repo repository.ProjectRepository, codes *CodeService, auditSvc *AuditService) *ProjectService {
	return &ProjectService{repo: repo, codes: codes, auditSvc: auditSvc}
}

func (s *ProjectService) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return project, err
}

func (s *ProjectService) List(ctx context.Context, query *repository.ListQuery) ([]models.Project, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ProjectService) Create(ctx context.Context, project *models.Project, meta RequestMeta) error {
	project.Name = strings.TrimSpace(project.Name)
	project.Code = strings.TrimSpace(project.Code)
	if project.Name == "" {
		verr := NewValidationError()
		verr.Add("name", "is required")
		return verr
	}

	if project.Code == "" {
		code, err := s.codes.NextProjectCode(ctx)
		if err != nil {
			return err
		}
		project.Code = code
	}

	// Auto-generate GUID if not provided
	if project.GUID == "" {
		project.GUID = uuid.New().String()
	}

	if err := s.repo.Create(ctx, project); err != nil {
		if repository.IsUniqueViolation(err, "code") {
			verr := NewValidationError()
			verr.Add("code", "is already taken")
			return verr
		}
		return err
	}

	s.auditSvc.LogQuietly(ctx, meta, models.AuditActionCreate, models.AuditEntityProject, project.ID,
		map[string]any{"code": project.Code, "name": project.Name})
	return nil
}
