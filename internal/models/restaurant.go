package models

import "time"

type Restaurant struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Introduction string          `gorm:"type:text" json:"introduction"`
	CreatedAt    time.Time       `gorm:"autoCreateTime;not null" json:"created_at"`
	MerchantID   uint            `gorm:"not null;index" json:"merchant"`
	Merchant     MerchantProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
