package repository

import (
	"context"

	"github.com/sjperalta/obra-api/internal/models"
	"gorm.io/gorm"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	List(ctx context.Context, query *ListQuery) ([]models.Client, int64, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) List(ctx context.Context, query *ListQuery) ([]models.Client, int64, error) {
	var clients []models.Client
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Client{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR code ILIKE ? OR phone ILIKE ? OR national_id ILIKE ?",
			search, search, search, search)
	}

	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = paginate(db, query, map[string]string{
		"name":       "name",
		"code":       "code",
		"created_at": "created_at",
	}, "created_at DESC")

	err := db.Find(&clients).Error
	return clients, total, err
}
