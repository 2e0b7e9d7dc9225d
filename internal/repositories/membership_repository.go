package repositories

import (
	"context"

	"marketplace/internal/models"

	"gorm.io/gorm"
)

// MembershipRepository reads the membership level catalog.
type MembershipRepository interface {
	List(ctx context.Context) ([]models.MembershipLevel, error)
	Exists(ctx context.Context, id uint) (bool, error)
	WithTx(tx *gorm.DB) MembershipRepository
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) WithTx(tx *gorm.DB) MembershipRepository {
	return &membershipRepository{db: tx}
}

func (r *membershipRepository) List(ctx context.Context) ([]models.MembershipLevel, error) {
	var levels []models.MembershipLevel
	err := r.db.WithContext(ctx).Order("id asc").Find(&levels).Error
	return levels, err
}

// Exists uses a count query since level 0 is a valid key.
func (r *membershipRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MembershipLevel{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
