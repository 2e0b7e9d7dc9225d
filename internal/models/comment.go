package models

import "time"

type Comment struct {
	ID           uint       `gorm:"primaryKey"`
	Comment      string     `gorm:"type:text;not null"`
	AccountID    uint       `gorm:"not null;index"`
	Account      Account    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RestaurantID uint       `gorm:"not null;index"`
	Restaurant   Restaurant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;not null"`
}

type CommentResponse struct {
	ID         uint            `json:"id"`
	Comment    string          `json:"comment"`
	User       AccountResponse `json:"user"`
	Restaurant uint            `json:"restaurant"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Response expects Account to be preloaded.
func (c *Comment) Response() CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Comment:    c.Comment,
		User:       c.Account.Public(),
		Restaurant: c.RestaurantID,
		CreatedAt:  c.CreatedAt,
	}
}
