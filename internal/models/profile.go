package models

// CustomerProfile marks an account as a customer.
type CustomerProfile struct {
	ID        uint    `gorm:"primaryKey"`
	AccountID uint    `gorm:"uniqueIndex;not null"`
	Account   Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// MerchantProfile marks an account as a merchant with a membership level.
type MerchantProfile struct {
	ID                uint            `gorm:"primaryKey"`
	AccountID         uint            `gorm:"uniqueIndex;not null"`
	Account           Account         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	MembershipLevelID uint            `gorm:"not null;index"`
	MembershipLevel   MembershipLevel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

type MerchantResponse struct {
	User            AccountResponse `json:"user"`
	MembershipLevel MembershipLevel `json:"membership_level"`
}

// Response expects Account and MembershipLevel to be preloaded.
func (m *MerchantProfile) Response() MerchantResponse {
	return MerchantResponse{
		User:            m.Account.Public(),
		MembershipLevel: m.MembershipLevel,
	}
}
