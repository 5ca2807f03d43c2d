package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, contribution *Contribution) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Contribution, error)
	List(ctx context.Context, db *gorm.DB) ([]Contribution, error)
	ListByActivity(ctx context.Context, db *gorm.DB, activityID snowflake.ID) ([]Contribution, error)
	ListByMember(ctx context.Context, db *gorm.DB, memberID snowflake.ID) ([]Contribution, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
