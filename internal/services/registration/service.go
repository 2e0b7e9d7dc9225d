// Package registration creates accounts together with exactly one role profile.
//
// Both sign-up flows validate the request, then write the account and its
// profile inside a single database transaction: if the profile insert fails
// the account row is rolled back, so no password-bearing account can exist
// without a role.
package registration

import (
	"context"
	"errors"
	"fmt"

	apperr "marketplace/internal/errors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MsgUsernameTaken = "A user with that username already exists."

type Service interface {
	RegisterCustomer(ctx context.Context, in *models.RegisterInput) (*models.Account, error)
	RegisterMerchant(ctx context.Context, in *models.RegisterInput) (*models.Account, error)
}

type service struct {
	db         *gorm.DB
	accounts   repositories.AccountRepository
	profiles   repositories.ProfileRepository
	levels     repositories.MembershipRepository
	bcryptCost int
	log        *zap.Logger
}

func NewService(
	db *gorm.DB,
	accounts repositories.AccountRepository,
	profiles repositories.ProfileRepository,
	levels repositories.MembershipRepository,
	bcryptCost int,
	log *zap.Logger,
) Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{
		db:         db,
		accounts:   accounts,
		profiles:   profiles,
		levels:     levels,
		bcryptCost: bcryptCost,
		log:        log.Named("registration"),
	}
}

func (s *service) RegisterCustomer(ctx context.Context, in *models.RegisterInput) (*models.Account, error) {
	v := validation.New()
	v.Registration(in)
	if !v.Valid() {
		return nil, v.Err()
	}

	account, err := s.newAccount(ctx, in, models.RoleCustomer)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.accounts.WithTx(tx).Create(ctx, account); err != nil {
			return err
		}
		return s.profiles.WithTx(tx).CreateCustomer(ctx, &models.CustomerProfile{AccountID: account.ID})
	})
	if err != nil {
		return nil, s.txError("customer", err)
	}

	s.log.Info("customer registered", zap.Uint("account_id", account.ID))
	return account, nil
}

func (s *service) RegisterMerchant(ctx context.Context, in *models.RegisterInput) (*models.Account, error) {
	v := validation.New()
	v.MerchantRegistration(in)
	if !v.Valid() {
		return nil, v.Err()
	}

	account, err := s.newAccount(ctx, in, models.RoleMerchant)
	if err != nil {
		return nil, err
	}
	levelID := *in.MembershipLevelID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.levels.WithTx(tx).Exists(ctx, levelID)
		if err != nil {
			return fmt.Errorf("check membership level: %w", err)
		}
		if !ok {
			return invalidLevel(levelID)
		}

		if err := s.accounts.WithTx(tx).Create(ctx, account); err != nil {
			return err
		}
		return s.profiles.WithTx(tx).CreateMerchant(ctx, &models.MerchantProfile{
			AccountID:         account.ID,
			MembershipLevelID: levelID,
		})
	})
	if err != nil {
		return nil, s.txError("merchant", err)
	}

	s.log.Info("merchant registered",
		zap.Uint("account_id", account.ID),
		zap.Uint("membership_level_id", levelID),
	)
	return account, nil
}

// newAccount checks the username is free and hashes the password.
func (s *service) newAccount(ctx context.Context, in *models.RegisterInput, role models.Role) (*models.Account, error) {
	taken, err := s.accounts.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apperr.FieldError("username", MsgUsernameTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &models.Account{
		Username: in.Username,
		Password: string(hash),
		Email:    in.Email,
		Role:     role,
	}, nil
}

// txError converts a failed registration transaction into the error
// returned to the caller. The uniqueness check above can race, so the
// storage constraint is translated here as well.
func (s *service) txError(kind string, err error) error {
	if errors.Is(err, repositories.ErrUsernameTaken) {
		return apperr.FieldError("username", MsgUsernameTaken)
	}
	if _, ok := apperr.AsValidation(err); ok {
		return err
	}
	s.log.Error("registration rolled back", zap.String("kind", kind), zap.Error(err))
	return fmt.Errorf("register %s: %w", kind, err)
}

func invalidLevel(id uint) error {
	return apperr.FieldError("membership_level_id",
		fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}
