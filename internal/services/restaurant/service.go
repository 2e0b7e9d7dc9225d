// Package restaurant implements restaurant CRUD scoped to the calling merchant.
//
// A caller without a merchant profile sees an empty list and gets not-found
// on every item operation. Touching another merchant's restaurant is also
// reported as not-found, never as forbidden.
package restaurant

import (
	"context"
	"errors"
	"fmt"

	apperr "marketplace/internal/errors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"

	"go.uber.org/zap"
)

const MsgMerchantRequired = "Only merchants can create restaurants."

type Service interface {
	List(ctx context.Context, caller *models.Identity) ([]models.Restaurant, error)
	Get(ctx context.Context, caller *models.Identity, id uint) (*models.Restaurant, error)
	Create(ctx context.Context, caller *models.Identity, in *models.RestaurantInput) (*models.Restaurant, error)

	// Update applies a full (partial=false) or partial write.
	Update(ctx context.Context, caller *models.Identity, id uint, in *models.RestaurantInput, partial bool) (*models.Restaurant, error)
	Delete(ctx context.Context, caller *models.Identity, id uint) error
}

type service struct {
	repo repositories.RestaurantRepository
	log  *zap.Logger
}

func NewService(repo repositories.RestaurantRepository, log *zap.Logger) Service {
	return &service{repo: repo, log: log.Named("restaurant")}
}

func (s *service) List(ctx context.Context, caller *models.Identity) ([]models.Restaurant, error) {
	merchant, ok := caller.Merchant()
	if !ok {
		return []models.Restaurant{}, nil
	}
	return s.repo.ListByMerchant(ctx, merchant.ID)
}

func (s *service) Get(ctx context.Context, caller *models.Identity, id uint) (*models.Restaurant, error) {
	merchant, ok := caller.Merchant()
	if !ok {
		return nil, apperr.ErrNotFound
	}
	r, err := s.repo.GetForMerchant(ctx, merchant.ID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

func (s *service) Create(ctx context.Context, caller *models.Identity, in *models.RestaurantInput) (*models.Restaurant, error) {
	v := validation.New()
	v.Restaurant(in, false)
	if !v.Valid() {
		return nil, v.Err()
	}

	merchant, ok := caller.Merchant()
	if !ok {
		return nil, apperr.FieldError("merchant", MsgMerchantRequired)
	}

	r := &models.Restaurant{
		Name:       *in.Name,
		MerchantID: merchant.ID,
	}
	if in.Introduction != nil {
		r.Introduction = *in.Introduction
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	s.log.Info("restaurant created", zap.Uint("restaurant_id", r.ID), zap.Uint("merchant_id", merchant.ID))
	return r, nil
}

func (s *service) Update(ctx context.Context, caller *models.Identity, id uint, in *models.RestaurantInput, partial bool) (*models.Restaurant, error) {
	r, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	v := validation.New()
	v.Restaurant(in, partial)
	if !v.Valid() {
		return nil, v.Err()
	}

	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Introduction != nil {
		r.Introduction = *in.Introduction
	} else if !partial {
		r.Introduction = ""
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

func (s *service) Delete(ctx context.Context, caller *models.Identity, id uint) error {
	merchant, ok := caller.Merchant()
	if !ok {
		return apperr.ErrNotFound
	}
	if err := s.repo.DeleteForMerchant(ctx, merchant.ID, id); err != nil {
		return notFound(err)
	}
	s.log.Info("restaurant deleted", zap.Uint("restaurant_id", id), zap.Uint("merchant_id", merchant.ID))
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repositories.ErrRestaurantNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
