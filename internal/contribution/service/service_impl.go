package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/kapitulo/kapitulo/internal/activity/domain"
	"github.com/kapitulo/kapitulo/internal/clock"
	"github.com/kapitulo/kapitulo/internal/contribution/domain"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	ActivityRepo activitydomain.Repository
	MemberRepo   memberdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	activityRepo activitydomain.Repository
	memberRepo   memberdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("contribution.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		activityRepo: p.ActivityRepo,
		memberRepo:   p.MemberRepo,
	}
}

// Create inserts the contribution and bumps the parent activity's
// current_amount in the same transaction, so the running total and the
// contribution set cannot diverge.
func (s *Service) Create(ctx context.Context, req domain.CreateContributionRequest) (domain.Contribution, error) {
	activityID, err := snowflake.ParseString(strings.TrimSpace(req.ActivityID))
	if err != nil || activityID == 0 {
		return domain.Contribution{}, domain.ErrInvalidActivityID
	}
	memberID, err := snowflake.ParseString(strings.TrimSpace(req.MemberID))
	if err != nil || memberID == 0 {
		return domain.Contribution{}, domain.ErrInvalidMemberID
	}
	if req.Amount <= 0 {
		return domain.Contribution{}, domain.ErrInvalidAmount
	}
	if req.ContributionDate.IsZero() {
		return domain.Contribution{}, domain.ErrInvalidDate
	}

	contribution := domain.Contribution{
		ID:               s.genID.Generate(),
		ActivityID:       activityID,
		MemberID:         memberID,
		Amount:           req.Amount,
		ContributionDate: req.ContributionDate.UTC(),
		Notes:            strings.TrimSpace(req.Notes),
		CreatedAt:        s.clock.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := s.activityRepo.FindByID(ctx, tx, activityID)
		if err != nil {
			return err
		}
		if activity == nil {
			return domain.ErrActivityNotFound
		}
		if activity.Status != activitydomain.ActivityStatusActive {
			return domain.ErrActivityNotAccepting
		}

		member, err := s.memberRepo.FindByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			return domain.ErrMemberNotFound
		}

		if err := s.repo.Insert(ctx, tx, &contribution); err != nil {
			return err
		}

		return tx.Exec(
			`UPDATE activities SET current_amount = current_amount + ? WHERE id = ?`,
			int64(contribution.Amount), activityID,
		).Error
	})
	if err != nil {
		return domain.Contribution{}, err
	}

	return contribution, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Contribution, error) {
	contributions, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if contributions == nil {
		contributions = []domain.Contribution{}
	}
	return contributions, nil
}

func (s *Service) ListByActivity(ctx context.Context, activityID string) ([]domain.Contribution, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(activityID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidActivityID
	}

	contributions, err := s.repo.ListByActivity(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if contributions == nil {
		contributions = []domain.Contribution{}
	}
	return contributions, nil
}

func (s *Service) ListByMember(ctx context.Context, memberID string) ([]domain.Contribution, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(memberID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidMemberID
	}

	contributions, err := s.repo.ListByMember(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if contributions == nil {
		contributions = []domain.Contribution{}
	}
	return contributions, nil
}

// Delete removes the contribution and rolls its amount back out of the
// activity total, mirroring Create.
func (s *Service) Delete(ctx context.Context, id string) error {
	contributionID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || contributionID == 0 {
		return domain.ErrInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contribution, err := s.repo.FindByID(ctx, tx, contributionID)
		if err != nil {
			return err
		}
		if contribution == nil {
			return domain.ErrNotFound
		}

		affected, err := s.repo.Delete(ctx, tx, contributionID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}

		return tx.Exec(
			`UPDATE activities SET current_amount = current_amount - ? WHERE id = ?`,
			int64(contribution.Amount), contribution.ActivityID,
		).Error
	})
}
