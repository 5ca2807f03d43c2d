package repository

import (
	"context"
	"errors"

	"github.com/kapitulo/kapitulo/internal/chapter/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Find(ctx context.Context, db *gorm.DB) (*domain.ChapterInfo, error) {
	var info domain.ChapterInfo
	err := db.WithContext(ctx).First(&info, "id = ?", domain.SingletonID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, info *domain.ChapterInfo) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(info).Error
}
