// Package repotest opens throwaway SQLite databases with the full schema
// migrated, for use in tests of packages that sit on top of repositories.
package repotest

import (
	"context"
	"testing"

	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory database with foreign keys enforced.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := repositories.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), cfg)
	require.NoError(t, err)

	// Each connection to :memory: is its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.Migrate(db))
	return db
}

// CreateMerchant inserts a merchant account and profile directly.
func CreateMerchant(t testing.TB, db *gorm.DB, username string, level uint) *models.MerchantProfile {
	t.Helper()
	account := models.Account{Username: username, Password: "x", Role: models.RoleMerchant}
	require.NoError(t, db.Create(&account).Error)

	profile := models.MerchantProfile{AccountID: account.ID, MembershipLevelID: level}
	require.NoError(t, db.Omit("Account", "MembershipLevel").Create(&profile).Error)
	loaded, err := repositories.NewProfileRepository(db).GetMerchantByAccountID(context.Background(), account.ID)
	require.NoError(t, err)
	return loaded
}

// CreateCustomer inserts a customer account and profile directly.
func CreateCustomer(t testing.TB, db *gorm.DB, username string) *models.CustomerProfile {
	t.Helper()
	account := models.Account{Username: username, Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&account).Error)

	profile := models.CustomerProfile{AccountID: account.ID}
	require.NoError(t, db.Omit("Account").Create(&profile).Error)
	profile.Account = account
	return &profile
}

// CreateRestaurant inserts a restaurant owned by the given merchant profile.
func CreateRestaurant(t testing.TB, db *gorm.DB, merchantID uint, name string) *models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: name, MerchantID: merchantID}
	require.NoError(t, db.Omit("Merchant").Create(&r).Error)
	return &r
}
