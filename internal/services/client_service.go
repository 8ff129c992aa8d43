package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"gorm.io/gorm"
)

var fieldValidator = validator.New()

type ClientService struct {
	repo     repository.ClientRepository
	codes    *CodeService
	auditSvc *AuditService
}

func NewClientService(repo repository.ClientRepository, codes *CodeService, auditSvc *AuditService) *ClientService {
	return &ClientService{repo: repo, codes: codes, auditSvc: auditSvc}
}

func (s *ClientService) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return client, err
}

func (s *ClientService) List(ctx context.Context, query *repository.ListQuery) ([]models.Client, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ClientService) Create(ctx context.Context, client *models.Client, meta RequestMeta) error {
	client.Name = strings.TrimSpace(client.Name)
	client.Code = strings.TrimSpace(client.Code)

	verr := NewValidationError()
	if client.Name == "" {
		verr.Add("name", "is required")
	}
	if client.Email != nil && *client.Email != "" {
		if err := fieldValidator.Var(*client.Email, "email"); err != nil {
			verr.Add("email", "is not a valid email address")
		}
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	if client.Code == "" {
		code, err := s.codes.NextClientCode(ctx)
		if err != nil {
			return err
		}
		client.Code = code
	}

	if err := s.repo.Create(ctx, client); err != nil {
		if repository.IsUniqueViolation(err, "code") {
			verr.Add("code", "is already taken")
			return verr
		}
		return err
	}

	s.auditSvc.LogQuietly(ctx, meta, models.AuditActionCreate, models.AuditEntityClient, client.ID,
		map[string]any{"code": client.Code, "name": client.Name})
	return nil
}
