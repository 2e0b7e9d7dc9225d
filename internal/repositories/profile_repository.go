package repositories

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository persists the customer and merchant profiles attached to accounts.
type ProfileRepository interface {
	CreateCustomer(ctx context.Context, profile *models.CustomerProfile) error
	CreateMerchant(ctx context.Context, profile *models.MerchantProfile) error

	// GetCustomerByAccountID returns the customer profile of an account
	GetCustomerByAccountID(ctx context.Context, accountID uint) (*models.CustomerProfile, error)

	// GetMerchantByAccountID returns the merchant profile with its
	// account and membership level preloaded.
	GetMerchantByAccountID(ctx context.Context, accountID uint) (*models.MerchantProfile, error)

	WithTx(tx *gorm.DB) ProfileRepository
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) WithTx(tx *gorm.DB) ProfileRepository {
	return &profileRepository{db: tx}
}

func (r *profileRepository) CreateCustomer(ctx context.Context, profile *models.CustomerProfile) error {
	return r.db.WithContext(ctx).Omit("Account").Create(profile).Error
}

func (r *profileRepository) CreateMerchant(ctx context.Context, profile *models.MerchantProfile) error {
	return r.db.WithContext(ctx).Omit("Account", "MembershipLevel").Create(profile).Error
}

func (r *profileRepository) GetCustomerByAccountID(ctx context.Context, accountID uint) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := r.db.WithContext(ctx).
		Preload("Account").
		Where("account_id = ?", accountID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetMerchantByAccountID(ctx context.Context, accountID uint) (*models.MerchantProfile, error) {
	var profile models.MerchantProfile
	err := r.db.WithContext(ctx).
		Preload("Account").
		Where("account_id = ?", accountID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	// Preload skips zero foreign keys, and level 0 is a real row.
	err = r.db.WithContext(ctx).
		Where("id = ?", profile.MembershipLevelID).
		First(&profile.MembershipLevel).Error
	if err != nil {
		return nil, fmt.Errorf("load membership level %d: %w", profile.MembershipLevelID, err)
	}
	return &profile, nil
}
