package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/internal/activity/domain"
	"github.com/kapitulo/kapitulo/pkg/money"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, activity *domain.Activity) error {
	return db.WithContext(ctx).Create(activity).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Activity, error) {
	var activity domain.Activity
	err := db.WithContext(ctx).First(&activity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Activity, error) {
	var activities []domain.Activity
	err := db.WithContext(ctx).
		Order("start_date desc, id desc").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// Update persists the admin-editable fields. current_amount is excluded:
// only the contribution write transaction and SetCurrentAmount touch the
// counter, so a stale struct can never revert a concurrent contribution.
func (r *repo) Update(ctx context.Context, db *gorm.DB, activity *domain.Activity) error {
	return db.WithContext(ctx).Omit("current_amount").Save(activity).Error
}

func (r *repo) SetCurrentAmount(ctx context.Context, db *gorm.DB, id snowflake.ID, amount money.Amount) error {
	return db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("id = ?", id).
		Update("current_amount", amount).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Activity{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repo) SumContributions(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) FROM contributions WHERE activity_id = ?`,
		id,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
