package repositories

import (
	"context"
	"errors"

	"marketplace/internal/models"

	"gorm.io/gorm"
)

var ErrServiceNotFound = errors.New("service not found")

// ServiceRepository manages the catalog of offerable services.
type ServiceRepository interface {
	List(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id uint) (*models.Service, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id uint) error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) List(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	err := r.db.WithContext(ctx).Order("id asc").Find(&services).Error
	return services, err
}

func (r *serviceRepository) GetByID(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *serviceRepository) Create(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

// Delete removes a service. Orders referencing it keep existing with a null service.
func (r *serviceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}
