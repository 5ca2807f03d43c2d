package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, member *Member) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Member, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Member, error)
	FindByBatchNumber(ctx context.Context, db *gorm.DB, batchNumber string) (*Member, error)
	List(ctx context.Context, db *gorm.DB) ([]Member, error)
	Update(ctx context.Context, db *gorm.DB, member *Member) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
