package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Payment, error)
	List(ctx context.Context, db *gorm.DB) ([]Payment, error)
	ListByMember(ctx context.Context, db *gorm.DB, memberID snowflake.ID) ([]Payment, error)
	Recent(ctx context.Context, db *gorm.DB, limit int) ([]RecentPayment, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	DeleteAll(ctx context.Context, db *gorm.DB) (int64, error)
}
