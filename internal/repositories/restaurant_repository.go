package repositories

import (
	"context"
	"errors"

	"marketplace/internal/models"

	"gorm.io/gorm"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantRepository stores restaurants. Every read and write except
// Exists is scoped to the owning merchant profile.
type RestaurantRepository interface {
	ListByMerchant(ctx context.Context, merchantID uint) ([]models.Restaurant, error)

	// GetForMerchant returns ErrRestaurantNotFound both for a missing row
	// and for a row owned by a different merchant.
	GetForMerchant(ctx context.Context, merchantID, id uint) (*models.Restaurant, error)

	Create(ctx context.Context, restaurant *models.Restaurant) error

	// Update writes name and introduction. The owner is never changed.
	Update(ctx context.Context, restaurant *models.Restaurant) error

	DeleteForMerchant(ctx context.Context, merchantID, id uint) error

	// Exists reports whether a restaurant exists regardless of owner
	Exists(ctx context.Context, id uint) (bool, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) ListByMerchant(ctx context.Context, merchantID uint) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("id asc").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *restaurantRepository) GetForMerchant(ctx context.Context, merchantID, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", id, merchantID).
		First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Omit("Merchant").Create(restaurant).Error
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	result := r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("id = ? AND merchant_id = ?", restaurant.ID, restaurant.MerchantID).
		Updates(map[string]interface{}{
			"name":         restaurant.Name,
			"introduction": restaurant.Introduction,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (r *restaurantRepository) DeleteForMerchant(ctx context.Context, merchantID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", id, merchantID).
		Delete(&models.Restaurant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (r *restaurantRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
