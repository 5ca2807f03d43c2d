package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/pkg/money"
)

// Contribution is one member's donation toward a fundraising activity.
type Contribution struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	ActivityID       snowflake.ID `gorm:"not null;index" json:"activityId"`
	MemberID         snowflake.ID `gorm:"not null;index" json:"memberId"`
	Amount           money.Amount `gorm:"not null" json:"amount"`
	ContributionDate time.Time    `gorm:"not null" json:"contributionDate"`
	Notes            string       `json:"notes,omitempty"`
	CreatedAt        time.Time    `gorm:"not null" json:"createdAt"`
}

func (Contribution) TableName() string { return "contributions" }
