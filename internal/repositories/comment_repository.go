package repositories

import (
	"context"
	"errors"

	"marketplace/internal/models"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository stores comments left by accounts on restaurants.
type CommentRepository interface {
	// ListByRestaurant returns one page of comments, newest first, and the total count.
	ListByRestaurant(ctx context.Context, restaurantID uint, offset, limit int) ([]models.Comment, int64, error)

	// Create inserts the comment and reloads it with its author.
	Create(ctx context.Context, comment *models.Comment) error

	// DeleteByAuthor removes a comment only when accountID wrote it.
	DeleteByAuthor(ctx context.Context, accountID, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByRestaurant(ctx context.Context, restaurantID uint, offset, limit int) ([]models.Comment, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("restaurant_id = ?", restaurantID).
		Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	comments := []models.Comment{}
	err := query.
		Preload("Account").
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Account", "Restaurant").Create(comment).Error; err != nil {
		return err
	}
	return db.Preload("Account").First(comment, comment.ID).Error
}

func (r *commentRepository) DeleteByAuthor(ctx context.Context, accountID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
