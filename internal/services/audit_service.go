package services

import (
	"context"

	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"github.com/sjperalta/obra-api/pkg/logger"
)

// RequestMeta identifies the request that caused an audited action
type RequestMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

func (m RequestMeta) apply(entry *models.AuditLog) {
	entry.IPAddress = m.IP
	entry.UserAgent = m.UserAgent
	entry.RequestID = m.RequestID
}

type AuditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Log records an audit entry
func (s *AuditService) Log(ctx context.Context, meta RequestMeta, action, entity string, entityID uint, metadata any) error {
	entry := models.NewAuditLog(action, entity, entityID, metadata)
	meta.apply(entry)
	return s.repo.Create(ctx, entry)
}

// LogQuietly records an audit entry outside any transaction. Failures are only logged.
func (s *AuditService) LogQuietly(ctx context.Context, meta RequestMeta, action, entity string, entityID uint, metadata any) {
	if err := s.Log(ctx, meta, action, entity, entityID, metadata); err != nil {
		logger.FromContext(ctx).Error("failed to write audit entry",
			"action", action, "entity", entity, "entity_id", entityID, "error", err)
	}
}

// List retrieves audit logs with filters
func (s *AuditService) List(ctx context.Context, query *repository.AuditQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}
