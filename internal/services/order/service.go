// Package order implements merchant-scoped order CRUD. It follows the same
// ownership rules as restaurants.
package order

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

const MsgMerchantRequired = "Only merchants can create orders."

type Service interface {
	List(ctx context.Context, caller *models.Identity) ([]models.Order, error)
	Get(ctx context.Context, caller *models.Identity, id uint) (*models.Order, error)
	Create(ctx context.Context, caller *models.Identity, in *models.OrderInput) (*models.Order, error)
	Update(ctx context.Context, caller *models.Identity, id uint, in *models.OrderInput, partial bool) (*models.Order, error)
	Delete(ctx context.Context, caller *models.Identity, id uint) error
}

type service struct {
	orders   repositories.OrderRepository
	services repositories.ServiceRepository
	log      *zap.Logger
}

func NewService(orders repositories.OrderRepository, services repositories.ServiceRepository, log *zap.Logger) Service {
	return &service{orders: orders, services: services, log: log.Named("order")}
}

func (s *service) List(ctx context.Context, caller *models.Identity) ([]models.Order, error) {
	merchant, ok := caller.Merchant()
	if !ok {
		return []models.Order{}, nil
	}
	return s.orders.ListByMerchant(ctx, merchant.ID)
}

func (s *service) Get(ctx context.Context, caller *models.Identity, id uint) (*models.Order, error) {
	merchant, ok := caller.Merchant()
	if !ok {
		return nil, apperr.ErrNotFound
	}
	o, err := s.orders.GetForMerchant(ctx, merchant.ID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

func (s *service) Create(ctx context.Context, caller *models.Identity, in *models.OrderInput) (*models.Order, error) {
	if err := s.validate(ctx, in, false); err != nil {
		return nil, err
	}

	merchant, ok := caller.Merchant()
	if !ok {
		return nil, apperr.FieldError("merchant", MsgMerchantRequired)
	}

	o := &models.Order{
		MerchantID:    merchant.ID,
		PaymentMethod: *in.PaymentMethod,
		Amount:        *in.Amount,
		Status:        *in.Status,
		ServiceID:     in.ServiceID,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		if ferr := serviceGone(err, o.ServiceID); ferr != nil {
			return nil, ferr
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info("order created", zap.Uint("order_id", o.ID), zap.Uint("merchant_id", merchant.ID))
	return o, nil
}

func (s *service) Update(ctx context.Context, caller *models.Identity, id uint, in *models.OrderInput, partial bool) (*models.Order, error) {
	o, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in, partial); err != nil {
		return nil, err
	}

	if in.PaymentMethod != nil {
		o.PaymentMethod = *in.PaymentMethod
	}
	if in.Amount != nil {
		o.Amount = *in.Amount
	}
	if in.Status != nil {
		o.Status = *in.Status
	}
	if in.ServiceID != nil || !partial {
		o.ServiceID = in.ServiceID
	}

	if err := s.orders.Update(ctx, o); err != nil {
		if ferr := serviceGone(err, o.ServiceID); ferr != nil {
			return nil, ferr
		}
		return nil, notFound(err)
	}
	return o, nil
}

func (s *service) Delete(ctx context.Context, caller *models.Identity, id uint) error {
	merchant, ok := caller.Merchant()
	if !ok {
		return apperr.ErrNotFound
	}
	if err := s.orders.DeleteForMerchant(ctx, merchant.ID, id); err != nil {
		return notFound(err)
	}
	return nil
}

func (s *service) validate(ctx context.Context, in *models.OrderInput, partial bool) error {
	v := validation.New()
	v.Order(in, partial)

	if in.ServiceID != nil {
		ok, err := s.services.Exists(ctx, *in.ServiceID)
		if err != nil {
			return fmt.Errorf("check service: %w", err)
		}
		v.Check(ok, "service", invalidService(*in.ServiceID))
	}
	return v.Err()
}

func invalidService(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

// serviceGone reports a service removed between validation and the write.
func serviceGone(err error, serviceID *uint) error {
	if serviceID == nil || !errors.Is(err, repositories.ErrOrderReference) {
		return nil
	}
	return apperr.FieldError("service", invalidService(*serviceID))
}

func notFound(err error) error {
	if errors.Is(err, repositories.ErrOrderNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
