package service

import (
	"context"
	"strings"

	"github.com/kapitulo/kapitulo/internal/chapter/domain"
	"github.com/kapitulo/kapitulo/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("chapter.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Get returns the chapter record, or a zero-value record when none has
// been saved yet.
func (s *Service) Get(ctx context.Context) (domain.ChapterInfo, error) {
	info, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return domain.ChapterInfo{}, err
	}
	if info == nil {
		return domain.ChapterInfo{ID: domain.SingletonID}, nil
	}
	return *info, nil
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertChapterInfoRequest) (domain.ChapterInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ChapterInfo{}, domain.ErrInvalidName
	}

	info := domain.ChapterInfo{
		ID:             domain.SingletonID,
		Name:           name,
		Address:        strings.TrimSpace(req.Address),
		ContactEmail:   strings.TrimSpace(req.ContactEmail),
		ContactPhone:   strings.TrimSpace(req.ContactPhone),
		TreasurerName:  strings.TrimSpace(req.TreasurerName),
		TreasurerEmail: strings.TrimSpace(req.TreasurerEmail),
		UpdatedAt:      s.clock.Now(),
	}

	if err := s.repo.Upsert(ctx, s.db, &info); err != nil {
		return domain.ChapterInfo{}, err
	}

	return info, nil
}
