// Package catalog serves the reference data: membership levels and the
// standalone service catalog. Every read goes to the database, so operator
// writes from another process are visible immediately.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperr "marketplace/internal/errors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"go.uber.org/zap"
)

type Service interface {
	ListMembershipLevels(ctx context.Context) ([]models.MembershipLevel, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// AddService and RemoveService back the operator CLI.
	AddService(ctx context.Context, description string) (*models.Service, error)
	RemoveService(ctx context.Context, id uint) error
}

type service struct {
	levels   repositories.MembershipRepository
	services repositories.ServiceRepository
	log      *zap.Logger
}

func NewService(levels repositories.MembershipRepository, services repositories.ServiceRepository, log *zap.Logger) Service {
	return &service{levels: levels, services: services, log: log.Named("catalog")}
}

func (s *service) ListMembershipLevels(ctx context.Context) ([]models.MembershipLevel, error) {
	levels, err := s.levels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list membership levels: %w", err)
	}
	return levels, nil
}

func (s *service) ListServices(ctx context.Context) ([]models.Service, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *service) GetService(ctx context.Context, id uint) (*models.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrServiceNotFound) {
		return nil, apperr.ErrNotFound
	}
	return svc, err
}

func (s *service) AddService(ctx context.Context, description string) (*models.Service, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperr.FieldError("description", "This field may not be blank.")
	}

	svc := &models.Service{Description: description}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	s.log.Info("service added", zap.Uint("service_id", svc.ID))
	return svc, nil
}

func (s *service) RemoveService(ctx context.Context, id uint) error {
	if err := s.services.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrServiceNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	s.log.Info("service removed", zap.Uint("service_id", id))
	return nil
}
