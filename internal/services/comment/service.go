package comment

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

type Service interface {
	// List returns a page of comments on a restaurant, newest first.
	List(ctx context.Context, restaurantID uint, offset, limit int) ([]models.Comment, int64, error)

	// Create stores a comment authored by the caller.
	Create(ctx context.Context, caller *models.Identity, restaurantID uint, in *models.CommentInput) (*models.Comment, error)

	// Delete removes one of the caller's own comments.
	Delete(ctx context.Context, caller *models.Identity, id uint) error
}

type service struct {
	comments    repositories.CommentRepository
	restaurants repositories.RestaurantRepository
	log         *zap.Logger
}

func NewService(comments repositories.CommentRepository, restaurants repositories.RestaurantRepository, log *zap.Logger) Service {
	return &service{comments: comments, restaurants: restaurants, log: log.Named("comment")}
}

func (s *service) List(ctx context.Context, restaurantID uint, offset, limit int) ([]models.Comment, int64, error) {
	if err := s.requireRestaurant(ctx, restaurantID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByRestaurant(ctx, restaurantID, offset, limit)
}

func (s *service) Create(ctx context.Context, caller *models.Identity, restaurantID uint, in *models.CommentInput) (*models.Comment, error) {
	if err := s.requireRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	v := validation.New()
	v.Comment(in)
	if !v.Valid() {
		return nil, v.Err()
	}

	c := &models.Comment{
		Comment:      in.Comment,
		AccountID:    caller.Account.ID,
		RestaurantID: restaurantID,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, caller *models.Identity, id uint) error {
	err := s.comments.DeleteByAuthor(ctx, caller.Account.ID, id)
	if errors.Is(err, repositories.ErrCommentNotFound) {
		return apperr.ErrNotFound
	}
	return err
}

func (s *service) requireRestaurant(ctx context.Context, id uint) error {
	ok, err := s.restaurants.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check restaurant: %w", err)
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}
