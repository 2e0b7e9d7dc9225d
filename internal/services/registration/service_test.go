package registration

import (
	"context"
	"errors"
	"testing"

	apperr "marketplace/internal/errors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/repositories/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func uintPtr(v uint) *uint { return &v }

type fixture struct {
	db  *gorm.DB
	svc Service
}

func newFixture(t *testing.T) fixture {
	db := repotest.NewDB(t)
	svc := NewService(db,
		repositories.NewAccountRepository(db),
		repositories.NewProfileRepository(db),
		repositories.NewMembershipRepository(db),
		bcrypt.MinCost,
		zap.NewNop(),
	)
	return fixture{db: db, svc: svc}
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	v, ok := apperr.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	return v.Fields
}

func TestRegisterCustomer(t *testing.T) {
	f := newFixture(t)

	account, err := f.svc.RegisterCustomer(context.Background(), &models.RegisterInput{
		Username:  "alice",
		Password:  "s3cret-pass",
		Password2: "s3cret-pass",
		Email:     "alice@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, models.RoleCustomer, account.Role)
	assert.NotEqual(t, "s3cret-pass", account.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("s3cret-pass")))

	assert.Equal(t, int64(1), count(t, f.db, &models.Account{}))
	assert.Equal(t, int64(1), count(t, f.db, &models.CustomerProfile{}))
	assert.Equal(t, int64(0), count(t, f.db, &models.MerchantProfile{}))
}

func TestRegisterCustomer_PasswordMismatchCreatesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RegisterCustomer(context.Background(), &models.RegisterInput{
		Username:  "alice",
		Password:  "one-password",
		Password2: "another-one",
	})
	assert.Equal(t, []string{"Password fields didn't match."}, fieldErrors(t, err)["password"])
	assert.Zero(t, count(t, f.db, &models.Account{}))
}

func TestRegisterCustomer_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	in := &models.RegisterInput{Username: "alice", Password: "pw-123456", Password2: "pw-123456"}

	_, err := f.svc.RegisterCustomer(context.Background(), in)
	require.NoError(t, err)

	_, err = f.svc.RegisterMerchant(context.Background(), &models.RegisterInput{
		Username: "alice", Password: "pw-123456", Password2: "pw-123456", MembershipLevelID: uintPtr(0),
	})
	assert.Equal(t, []string{MsgUsernameTaken}, fieldErrors(t, err)["username"])
	assert.Equal(t, int64(1), count(t, f.db, &models.Account{}))
	assert.Zero(t, count(t, f.db, &models.MerchantProfile{}))
}

func TestRegisterMerchant(t *testing.T) {
	tests := []struct {
		name    string
		level   *uint
		wantErr string
	}{
		{name: "free level is a valid choice", level: uintPtr(models.LevelFree)},
		{name: "platinum", level: uintPtr(models.LevelPlatinum)},
		{name: "unknown level", level: uintPtr(7), wantErr: `Invalid pk "7" - object does not exist.`},
		{name: "missing level", level: nil, wantErr: "This field is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			account, err := f.svc.RegisterMerchant(context.Background(), &models.RegisterInput{
				Username:          "m1",
				Password:          "pw-123456",
				Password2:         "pw-123456",
				MembershipLevelID: tt.level,
			})

			if tt.wantErr != "" {
				assert.Equal(t, []string{tt.wantErr}, fieldErrors(t, err)["membership_level_id"])
				assert.Zero(t, count(t, f.db, &models.Account{}))
				assert.Zero(t, count(t, f.db, &models.MerchantProfile{}))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, models.RoleMerchant, account.Role)

			var profile models.MerchantProfile
			require.NoError(t, f.db.Where("account_id = ?", account.ID).First(&profile).Error)
			assert.Equal(t, *tt.level, profile.MembershipLevelID)
			assert.Zero(t, count(t, f.db, &models.CustomerProfile{}))
		})
	}
}

// failingProfiles fails every profile insert so the account insert has to roll back.
type failingProfiles struct {
	repositories.ProfileRepository
}

func (f failingProfiles) WithTx(*gorm.DB) repositories.ProfileRepository { return f }

func (failingProfiles) CreateCustomer(context.Context, *models.CustomerProfile) error {
	return errors.New("profile insert failed")
}

func (failingProfiles) CreateMerchant(context.Context, *models.MerchantProfile) error {
	return errors.New("profile insert failed")
}

func TestRegistration_ProfileFailureRollsBackAccount(t *testing.T) {
	db := repotest.NewDB(t)
	svc := NewService(db,
		repositories.NewAccountRepository(db),
		failingProfiles{},
		repositories.NewMembershipRepository(db),
		bcrypt.MinCost,
		zap.NewNop(),
	)
	in := &models.RegisterInput{Username: "bob", Password: "pw-123456", Password2: "pw-123456", MembershipLevelID: uintPtr(1)}

	_, err := svc.RegisterCustomer(context.Background(), in)
	require.Error(t, err)
	_, isValidation := apperr.AsValidation(err)
	assert.False(t, isValidation)

	_, err = svc.RegisterMerchant(context.Background(), in)
	require.Error(t, err)

	assert.Zero(t, count(t, db, &models.Account{}))
}

func TestRegister_ValidationErrorsAreReportedTogether(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RegisterCustomer(context.Background(), &models.RegisterInput{
		Username: "bad name!",
		Email:    "not-an-email",
	})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "password2")
	assert.Contains(t, fields, "email")
}
