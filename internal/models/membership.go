package models

// Membership levels are a fixed catalog keyed by integer level.
const (
	LevelFree     uint = 0
	LevelSilver   uint = 1
	LevelGold     uint = 2
	LevelPlatinum uint = 3
)

// MembershipLevel is a merchant tier. Rows are delete-protected while
// any merchant references them.
type MembershipLevel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string `gorm:"type:varchar(20);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255);not null" json:"description"`
}

// DefaultMembershipLevels returns the seeded catalog in level order.
func DefaultMembershipLevels() []MembershipLevel {
	return []MembershipLevel{
		{ID: LevelFree, Name: "free", Description: "Free membership"},
		{ID: LevelSilver, Name: "silver", Description: "Silver membership"},
		{ID: LevelGold, Name: "gold", Description: "Gold membership"},
		{ID: LevelPlatinum, Name: "platinum", Description: "Platinum membership"},
	}
}
