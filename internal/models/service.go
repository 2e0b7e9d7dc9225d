package models

// Service is an entry of the standalone catalog of offerable services.
type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `gorm:"type:text;not null" json:"description"`
}
