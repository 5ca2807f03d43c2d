package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/pkg/money"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, activity *Activity) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Activity, error)
	List(ctx context.Context, db *gorm.DB) ([]Activity, error)
	Update(ctx context.Context, db *gorm.DB, activity *Activity) error
	SetCurrentAmount(ctx context.Context, db *gorm.DB, id snowflake.ID, amount money.Amount) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	SumContributions(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
