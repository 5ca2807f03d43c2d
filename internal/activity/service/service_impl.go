package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/internal/activity/domain"
	"github.com/kapitulo/kapitulo/internal/clock"
	contributiondomain "github.com/kapitulo/kapitulo/internal/contribution/domain"
	"github.com/kapitulo/kapitulo/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("activity.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateActivityRequest) (domain.Activity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Activity{}, domain.ErrInvalidName
	}
	if req.TargetAmount < 0 {
		return domain.Activity{}, domain.ErrInvalidTargetAmount
	}
	if req.StartDate.IsZero() {
		return domain.Activity{}, domain.ErrInvalidStartDate
	}

	status := req.Status
	if status == "" {
		status = domain.ActivityStatusActive
	}
	if !status.Valid() {
		return domain.Activity{}, domain.ErrInvalidStatus
	}

	activity := domain.Activity{
		ID:           s.genID.Generate(),
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		TargetAmount: req.TargetAmount,
		Status:       status,
		StartDate:    req.StartDate.UTC(),
		EndDate:      req.EndDate,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &activity); err != nil {
		return domain.Activity{}, err
	}

	return activity, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Activity, error) {
	activities, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	return activities, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Activity, error) {
	activityID, err := s.parseID(id)
	if err != nil {
		return domain.Activity{}, err
	}

	activity, err := s.repo.FindByID(ctx, s.db, activityID)
	if err != nil {
		return domain.Activity{}, err
	}
	if activity == nil {
		return domain.Activity{}, domain.ErrNotFound
	}
	return *activity, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateActivityRequest) (domain.Activity, error) {
	activityID, err := s.parseID(id)
	if err != nil {
		return domain.Activity{}, err
	}

	activity, err := s.repo.FindByID(ctx, s.db, activityID)
	if err != nil {
		return domain.Activity{}, err
	}
	if activity == nil {
		return domain.Activity{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Activity{}, domain.ErrInvalidName
		}
		activity.Name = name
	}
	if req.Description != nil {
		activity.Description = strings.TrimSpace(*req.Description)
	}
	if req.TargetAmount != nil {
		if *req.TargetAmount < 0 {
			return domain.Activity{}, domain.ErrInvalidTargetAmount
		}
		activity.TargetAmount = *req.TargetAmount
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return domain.Activity{}, domain.ErrInvalidStatus
		}
		activity.Status = *req.Status
	}
	if req.StartDate != nil {
		activity.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		activity.EndDate = req.EndDate
	}

	if err := s.repo.Update(ctx, s.db, activity); err != nil {
		return domain.Activity{}, err
	}

	return *activity, nil
}

// Delete removes the activity together with its contributions so the
// contributions table never references a missing campaign.
func (s *Service) Delete(ctx context.Context, id string) error {
	activityID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&contributiondomain.Contribution{}, "activity_id = ?", activityID).Error; err != nil {
			return err
		}
		affected, err := s.repo.Delete(ctx, tx, activityID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// RecomputeCurrentAmount re-derives current_amount from the contribution
// rows. Repair path for stores where the write transaction was unavailable.
func (s *Service) RecomputeCurrentAmount(ctx context.Context, id string) (domain.Activity, error) {
	activityID, err := s.parseID(id)
	if err != nil {
		return domain.Activity{}, err
	}

	var out domain.Activity
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := s.repo.FindByID(ctx, tx, activityID)
		if err != nil {
			return err
		}
		if activity == nil {
			return domain.ErrNotFound
		}

		total, err := s.repo.SumContributions(ctx, tx, activityID)
		if err != nil {
			return err
		}

		if err := s.repo.SetCurrentAmount(ctx, tx, activityID, money.Amount(total)); err != nil {
			return err
		}
		activity.CurrentAmount = money.Amount(total)
		out = *activity
		return nil
	})
	if err != nil {
		return domain.Activity{}, err
	}
	return out, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
