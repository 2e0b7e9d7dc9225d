package repositories

import (
	"context"
	"errors"

	"marketplace/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderReference means the merchant or service an order points to is gone.
	ErrOrderReference = errors.New("order references a missing row")
)

// OrderRepository stores orders, always scoped to the owning merchant.
type OrderRepository interface {
	ListByMerchant(ctx context.Context, merchantID uint) ([]models.Order, error)
	GetForMerchant(ctx context.Context, merchantID, id uint) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	DeleteForMerchant(ctx context.Context, merchantID, id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) ListByMerchant(ctx context.Context, merchantID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("id asc").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetForMerchant(ctx context.Context, merchantID, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", id, merchantID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Omit("Merchant", "Service").Create(order).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrOrderReference
	}
	return err
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND merchant_id = ?", order.ID, order.MerchantID).
		Updates(map[string]interface{}{
			"payment_method": order.PaymentMethod,
			"amount":         order.Amount,
			"status":         order.Status,
			"service_id":     order.ServiceID,
		})
	if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
		return ErrOrderReference
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) DeleteForMerchant(ctx context.Context, merchantID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", id, merchantID).
		Delete(&models.Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
