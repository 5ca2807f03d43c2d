package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/pkg/money"
)

// Payment is one dues remittance. PaymentDate is the dues period being
// paid for; CreatedAt is when the record was captured.
type Payment struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	MemberID    snowflake.ID `gorm:"not null;index" json:"memberId"`
	Amount      money.Amount `gorm:"not null" json:"amount"`
	PaymentDate time.Time    `gorm:"not null" json:"paymentDate"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `gorm:"not null" json:"createdAt"`
}

func (Payment) TableName() string { return "payments" }

// RecentPayment is a payment joined to its member's display name for the
// dashboard feed.
type RecentPayment struct {
	ID          snowflake.ID `json:"id"`
	MemberID    snowflake.ID `json:"memberId"`
	MemberName  string       `json:"memberName"`
	Amount      money.Amount `json:"amount"`
	PaymentDate time.Time    `json:"paymentDate"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}
