package models

import "time"

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	MerchantID    uint            `gorm:"not null;index" json:"merchant"`
	Merchant      MerchantProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PaymentMethod string          `gorm:"type:varchar(50);not null" json:"payment_method"`
	Amount        float64         `gorm:"type:decimal(10,1);not null" json:"amount"`
	Status        string          `gorm:"type:varchar(50);not null" json:"status"`
	IssuedAt      time.Time       `gorm:"autoCreateTime;not null" json:"issued_at"`
	ServiceID     *uint           `gorm:"index" json:"service"`
	Service       *Service        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}
