package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperr "marketplace/internal/errors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
	"marketplace/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Blacklist stores revoked token IDs.
type Blacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Service interface {
	// Login verifies credentials and issues an access/refresh pair.
	Login(ctx context.Context, in *models.LoginInput) (utils.TokenPair, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Logout revokes the refresh token and the access token the caller presented.
	Logout(ctx context.Context, access *models.UserClaims, refreshToken string) error

	// Authenticate validates an access token and returns its claims.
	Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error)

	// Identify loads the account and the single profile its role points to.
	Identify(ctx context.Context, accountID uint) (*models.Identity, error)
}

type service struct {
	accounts  repositories.AccountRepository
	profiles  repositories.ProfileRepository
	tokens    *utils.TokenIssuer
	blacklist Blacklist
	log       *zap.Logger

	// compared against when the username is unknown so both failure paths cost a bcrypt round.
	dummyHash []byte
}

func NewService(
	accounts repositories.AccountRepository,
	profiles repositories.ProfileRepository,
	tokens *utils.TokenIssuer,
	blacklist Blacklist,
	log *zap.Logger,
) Service {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.MinCost)
	return &service{
		accounts:  accounts,
		profiles:  profiles,
		tokens:    tokens,
		blacklist: blacklist,
		log:       log.Named("auth"),
		dummyHash: dummy,
	}
}

func (s *service) Login(ctx context.Context, in *models.LoginInput) (utils.TokenPair, error) {
	v := validation.New()
	v.Struct(in)
	if !v.Valid() {
		return utils.TokenPair{}, v.Err()
	}

	account, err := s.accounts.GetByUsername(ctx, in.Username)
	if err != nil {
		if !errors.Is(err, repositories.ErrAccountNotFound) {
			return utils.TokenPair{}, fmt.Errorf("load account: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		s.log.Info("login failed", zap.String("reason", "unknown username"))
		return utils.TokenPair{}, apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(in.Password)); err != nil {
		s.log.Info("login failed", zap.String("reason", "wrong password"), zap.Uint("account_id", account.ID))
		return utils.TokenPair{}, apperr.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(account.ID)
	if err != nil {
		return utils.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	return pair, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parse(ctx, refreshToken, models.TokenRefresh)
	if err != nil {
		return "", err
	}

	if _, err := s.accounts.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return "", apperr.ErrTokenInvalid
		}
		return "", fmt.Errorf("load account: %w", err)
	}

	access, err := s.tokens.IssueAccess(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

func (s *service) Logout(ctx context.Context, access *models.UserClaims, refreshToken string) error {
	refresh, err := s.parse(ctx, refreshToken, models.TokenRefresh)
	if err != nil {
		return err
	}
	if refresh.UserID != access.UserID {
		return apperr.ErrTokenInvalid
	}

	if err := s.blacklist.Revoke(ctx, refresh.ID, s.tokens.Remaining(refresh)); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if err := s.blacklist.Revoke(ctx, access.ID, s.tokens.Remaining(access)); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}

	s.log.Info("logged out", zap.Uint("account_id", access.UserID))
	return nil
}

func (s *service) Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error) {
	return s.parse(ctx, accessToken, models.TokenAccess)
}

func (s *service) parse(ctx context.Context, token string, typ models.TokenType) (*models.UserClaims, error) {
	claims, err := s.tokens.Parse(token, typ)
	if err != nil {
		return nil, apperr.ErrTokenInvalid
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return nil, apperr.ErrTokenRevoked
	}
	return claims, nil
}

func (s *service) Identify(ctx context.Context, accountID uint) (*models.Identity, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperr.ErrTokenInvalid
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	switch account.Role {
	case models.RoleMerchant:
		profile, err := s.profiles.GetMerchantByAccountID(ctx, account.ID)
		if err == nil {
			return models.NewMerchantIdentity(*account, profile), nil
		}
		if !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, fmt.Errorf("load merchant profile: %w", err)
		}
	case models.RoleCustomer:
		profile, err := s.profiles.GetCustomerByAccountID(ctx, account.ID)
		if err == nil {
			return models.NewCustomerIdentity(*account, profile), nil
		}
		if !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, fmt.Errorf("load customer profile: %w", err)
		}
	}
	return models.NewUnaffiliatedIdentity(*account), nil
}
