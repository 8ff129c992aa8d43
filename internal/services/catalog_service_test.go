package services

import (
	"context"
	"testing"

	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockClientRepository struct {
	repository.ClientRepository
	created []*models.Client
	err     error
}

func (m *mockClientRepository) Create(ctx context.Context, client *models.Client) error {
	if m.err != nil {
		return m.err
	}
	client.ID = uint(len(m.created) + 1)
	m.created = append(m.created, client)
	return nil
}

func (m *mockClientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	for _, c := range m.created {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type mockProjectCreateRepository struct {
	repository.ProjectRepository
	created *models.Project
}

func (m *mockProjectCreateRepository) Create(ctx context.Context, project *models.Project) error {
	project.ID = 5
	m.created = project
	return nil
}

func TestClientService_Create(t *testing.T) {
	repo := &mockClientRepository{}
	audits := &mockAuditRepository{}
	svc := NewClientService(repo, NewCodeService(newMockSequenceRepository(), "CON", 6), NewAuditService(audits))

	email := "mona@example.com"
	client := &models.Client{Name: "Mona Adel", Email: &email}
	require.NoError(t, svc.Create(context.Background(), client, RequestMeta{}))

	assert.Equal(t, "CLI-000001", client.Code)
	require.Len(t, audits.entries, 1)
	assert.Equal(t, models.AuditEntityClient, audits.entries[0].Entity)

	found, err := svc.FindByID(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mona Adel", found.Name)

	_, err = svc.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientService_Create_Validation(t *testing.T) {
	repo := &mockClientRepository{}
	svc := NewClientService(repo, NewCodeService(newMockSequenceRepository(), "CON", 6), NewAuditService(&mockAuditRepository{}))

	bad := "not-an-email"
	err := svc.Create(context.Background(), &models.Client{Name: "  ", Email: &bad}, RequestMeta{})
	require.ErrorIs(t, err, ErrInvalidInput)
	details := err.(*ValidationError).Details
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Empty(t, repo.created)
}

func TestClientService_Create_DuplicateCode(t *testing.T) {
	repo := &mockClientRepository{err: gorm.ErrDuplicatedKey}
	audits := &mockAuditRepository{}
	svc := NewClientService(repo, NewCodeService(newMockSequenceRepository(), "CON", 6), NewAuditService(audits))

	err := svc.Create(context.Background(), &models.Client{Name: "Omar", Code: "CLI-000001"}, RequestMeta{})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.(*ValidationError).Details, "code")
	assert.Empty(t, audits.entries)
}

func TestProjectService_Create_AssignsCodeAndGUID(t *testing.T) {
	repo := &mockProjectCreateRepository{}
	audits := &mockAuditRepository{err: errInjected}
	svc := NewProjectService(repo, NewCodeService(newMockSequenceRepository(), "CON", 6), NewAuditService(audits))

	project := &models.Project{Name: "Palm Residence"}
	// A failing audit write does not fail the create
	require.NoError(t, svc.Create(context.Background(), project, RequestMeta{}))

	assert.Equal(t, "PRJ-000001", project.Code)
	assert.Len(t, project.GUID, 36)
	assert.Same(t, project, repo.created)
}
