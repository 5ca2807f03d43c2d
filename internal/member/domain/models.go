package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type MemberType string

const (
	MemberTypePureBlooded MemberType = "pure_blooded"
	MemberTypeWelcome     MemberType = "welcome"
)

func (t MemberType) Valid() bool {
	switch t {
	case MemberTypePureBlooded, MemberTypeWelcome:
		return true
	default:
		return false
	}
}

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberStatusActive, MemberStatusInactive:
		return true
	default:
		return false
	}
}

// Member is a dues-paying individual. Email and batch number are unique
// across the chapter; the batch number doubles as the member-portal
// lookup key.
type Member struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"not null" json:"name"`
	Email          string       `gorm:"not null;uniqueIndex" json:"email"`
	BatchNumber    string       `gorm:"not null;uniqueIndex" json:"batchNumber"`
	BatchName      string       `json:"batchName,omitempty"`
	Address        string       `json:"address,omitempty"`
	MemberType     MemberType   `gorm:"type:text;not null" json:"memberType"`
	InitiationDate *time.Time   `json:"initiationDate,omitempty"`
	WelcomingDate  *time.Time   `json:"welcomingDate,omitempty"`
	Status         MemberStatus `gorm:"type:text;not null;default:active" json:"status"`
	JoinedAt       time.Time    `gorm:"not null" json:"joinedAt"`
}

func (Member) TableName() string { return "members" }
