package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ChapterInfo is the single record describing the organization. Writes
// are upserts against the fixed row id; there is never more than one row.
type ChapterInfo struct {
	ID             int64     `gorm:"primaryKey" json:"-"`
	Name           string    `gorm:"not null" json:"name"`
	Address        string    `json:"address,omitempty"`
	ContactEmail   string    `json:"contactEmail,omitempty"`
	ContactPhone   string    `json:"contactPhone,omitempty"`
	TreasurerName  string    `json:"treasurerName,omitempty"`
	TreasurerEmail string    `json:"treasurerEmail,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (ChapterInfo) TableName() string { return "chapter_info" }

// SingletonID is the fixed primary key of the one chapter_info row.
const SingletonID int64 = 1

type UpsertChapterInfoRequest struct {
	Name           string
	Address        string
	ContactEmail   string
	ContactPhone   string
	TreasurerName  string
	TreasurerEmail string
}

type Service interface {
	Get(ctx context.Context) (ChapterInfo, error)
	Upsert(ctx context.Context, req UpsertChapterInfoRequest) (ChapterInfo, error)
}

type Repository interface {
	Find(ctx context.Context, db *gorm.DB) (*ChapterInfo, error)
	Upsert(ctx context.Context, db *gorm.DB, info *ChapterInfo) error
}

var ErrInvalidName = errors.New("invalid_name")
