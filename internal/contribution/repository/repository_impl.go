package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/internal/contribution/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, contribution *domain.Contribution) error {
	return db.WithContext(ctx).Create(contribution).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Contribution, error) {
	var contribution domain.Contribution
	err := db.WithContext(ctx).First(&contribution, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contribution, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Contribution, error) {
	var contributions []domain.Contribution
	err := db.WithContext(ctx).
		Order("contribution_date desc, id desc").
		Find(&contributions).Error
	if err != nil {
		return nil, err
	}
	return contributions, nil
}

func (r *repo) ListByActivity(ctx context.Context, db *gorm.DB, activityID snowflake.ID) ([]domain.Contribution, error) {
	var contributions []domain.Contribution
	err := db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("contribution_date desc, id desc").
		Find(&contributions).Error
	if err != nil {
		return nil, err
	}
	return contributions, nil
}

func (r *repo) ListByMember(ctx context.Context, db *gorm.DB, memberID snowflake.ID) ([]domain.Contribution, error) {
	var contributions []domain.Contribution
	err := db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("contribution_date desc, id desc").
		Find(&contributions).Error
	if err != nil {
		return nil, err
	}
	return contributions, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Contribution{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
