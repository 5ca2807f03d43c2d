package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/pkg/money"
)

type ActivityStatus string

const (
	ActivityStatusActive    ActivityStatus = "active"
	ActivityStatusCompleted ActivityStatus = "completed"
	ActivityStatusCancelled ActivityStatus = "cancelled"
)

func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityStatusActive, ActivityStatusCompleted, ActivityStatusCancelled:
		return true
	default:
		return false
	}
}

// Activity is a time-boxed fundraising campaign. CurrentAmount is the
// running sum of its contributions and is kept in step with the
// contributions table inside each contribution write transaction.
type Activity struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description,omitempty"`
	TargetAmount  money.Amount   `gorm:"not null" json:"targetAmount"`
	CurrentAmount money.Amount   `gorm:"not null;default:0" json:"currentAmount"`
	Status        ActivityStatus `gorm:"type:text;not null;default:active" json:"status"`
	StartDate     time.Time      `gorm:"not null" json:"startDate"`
	EndDate       *time.Time     `json:"endDate,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"createdAt"`
}

func (Activity) TableName() string { return "activities" }

// MarshalJSON adds the derived progress percentage to every serialized
// activity so clients never recompute it from raw amounts.
func (a Activity) MarshalJSON() ([]byte, error) {
	type activityAlias Activity
	return json.Marshal(struct {
		activityAlias
		Progress float64 `json:"progress"`
	}{activityAlias(a), Progress(a.CurrentAmount, a.TargetAmount)})
}

// Progress reports how far an activity is toward its target as a
// percentage clamped to [0,100]. A zero target yields 0, never a
// division by zero.
func Progress(current, target money.Amount) float64 {
	if target <= 0 {
		return 0
	}
	pct := float64(current) / float64(target) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
