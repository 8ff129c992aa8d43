package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
)

// Code prefixes for generated catalog codes
const (
	ClientCodePrefix  = "CLI"
	UnitCodePrefix    = "UNT"
	ProjectCodePrefix = "PRJ"
)

// ContractNumberGenerator hands out unused contract numbers
type ContractNumberGenerator interface {
	NextContractNo(ctx context.Context) (string, error)
}

// CodeService formats human-readable codes from database-backed sequences
type CodeService struct {
	repo           repository.SequenceRepository
	contractPrefix string
	width          int
}

func NewCodeService(repo repository.SequenceRepository, contractPrefix string, width int) *CodeService {
	return &CodeService{repo: repo, contractPrefix: contractPrefix, width: width}
}

// NextContractNo returns the next contract number, e.g. CON-000042
func (s *CodeService) NextContractNo(ctx context.Context) (string, error) {
	return s.next(ctx, models.SequenceContract, s.contractPrefix)
}

func (s *CodeService) NextClientCode(ctx context.Context) (string, error) {
	return s.next(ctx, models.SequenceClient, ClientCodePrefix)
}

func (s *CodeService) NextUnitCode(ctx context.Context) (string, error) {
	return s.next(ctx, models.SequenceUnit, UnitCodePrefix)
}

func (s *CodeService) NextProjectCode(ctx context.Context) (string, error) {
	return s.next(ctx, models.SequenceProject, ProjectCodePrefix)
}

func (s *CodeService) next(ctx context.Context, sequence, prefix string) (string, error) {
	n, err := s.repo.Next(ctx, sequence, prefix)
	if err != nil {
		return "", fmt.Errorf("%w: %s sequence: %v", ErrCodeAllocation, sequence, err)
	}
	return FormatCode(prefix, s.width, n), nil
}

// FormatCode renders <prefix>-<n zero-padded to width>
func FormatCode(prefix string, width int, n int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, n)
}
