package repositories

import (
	"context"
	"errors"

	"marketplace/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// AccountRepository defines the database operations on accounts.
type AccountRepository interface {
	// Create inserts a new account. A duplicate username yields ErrUsernameTaken.
	Create(ctx context.Context, account *models.Account) error

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uint) (*models.Account, error)

	// GetByUsername retrieves an account by its exact username
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// UsernameExists reports whether the username is already registered
	UsernameExists(ctx context.Context, username string) (bool, error)

	// WithTx returns a repository bound to the given transaction
	WithTx(tx *gorm.DB) AccountRepository
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new instance of AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) WithTx(tx *gorm.DB) AccountRepository {
	return &accountRepository{db: tx}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}
