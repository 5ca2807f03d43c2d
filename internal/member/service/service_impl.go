package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/internal/clock"
	"github.com/kapitulo/kapitulo/internal/member/domain"
	"github.com/kapitulo/kapitulo/pkg/db"
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
		log:   p.Log.Named("member.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateMemberRequest) (domain.Member, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Member{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Member{}, domain.ErrInvalidEmail
	}

	batchNumber := strings.TrimSpace(req.BatchNumber)
	if batchNumber == "" {
		return domain.Member{}, domain.ErrInvalidBatchNumber
	}

	if !req.MemberType.Valid() {
		return domain.Member{}, domain.ErrInvalidMemberType
	}
	if req.MemberType == domain.MemberTypeWelcome && req.WelcomingDate == nil {
		return domain.Member{}, domain.ErrWelcomingDateRequired
	}

	status := req.Status
	if status == "" {
		status = domain.MemberStatusActive
	}
	if !status.Valid() {
		return domain.Member{}, domain.ErrInvalidStatus
	}

	// Pre-insert check so a duplicate batch number gets a specific message
	// even on stores without TranslateError support.
	existing, err := s.repo.FindByBatchNumber(ctx, s.db, batchNumber)
	if err != nil {
		return domain.Member{}, err
	}
	if existing != nil {
		return domain.Member{}, domain.ErrDuplicateBatchNumber
	}

	member := domain.Member{
		ID:             s.genID.Generate(),
		Name:           name,
		Email:          email,
		BatchNumber:    batchNumber,
		BatchName:      strings.TrimSpace(req.BatchName),
		Address:        strings.TrimSpace(req.Address),
		MemberType:     req.MemberType,
		InitiationDate: req.InitiationDate,
		WelcomingDate:  req.WelcomingDate,
		Status:         status,
		JoinedAt:       s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &member); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Member{}, s.classifyDuplicate(ctx, email)
		}
		return domain.Member{}, err
	}

	return member, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Member, error) {
	members, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Member, error) {
	memberID, err := s.parseID(id)
	if err != nil {
		return domain.Member{}, err
	}

	member, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Member{}, err
	}
	if member == nil {
		return domain.Member{}, domain.ErrNotFound
	}
	return *member, nil
}

func (s *Service) GetByBatchNumber(ctx context.Context, batchNumber string) (domain.Member, error) {
	batchNumber = strings.TrimSpace(batchNumber)
	if batchNumber == "" {
		return domain.Member{}, domain.ErrInvalidBatchNumber
	}

	member, err := s.repo.FindByBatchNumber(ctx, s.db, batchNumber)
	if err != nil {
		return domain.Member{}, err
	}
	if member == nil {
		return domain.Member{}, domain.ErrNotFound
	}
	return *member, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateMemberRequest) (domain.Member, error) {
	memberID, err := s.parseID(id)
	if err != nil {
		return domain.Member{}, err
	}

	member, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Member{}, err
	}
	if member == nil {
		return domain.Member{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Member{}, domain.ErrInvalidName
		}
		member.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return domain.Member{}, domain.ErrInvalidEmail
		}
		member.Email = email
	}
	if req.BatchNumber != nil {
		batchNumber := strings.TrimSpace(*req.BatchNumber)
		if batchNumber == "" {
			return domain.Member{}, domain.ErrInvalidBatchNumber
		}
		if batchNumber != member.BatchNumber {
			existing, err := s.repo.FindByBatchNumber(ctx, s.db, batchNumber)
			if err != nil {
				return domain.Member{}, err
			}
			if existing != nil {
				return domain.Member{}, domain.ErrDuplicateBatchNumber
			}
		}
		member.BatchNumber = batchNumber
	}
	if req.BatchName != nil {
		member.BatchName = strings.TrimSpace(*req.BatchName)
	}
	if req.Address != nil {
		member.Address = strings.TrimSpace(*req.Address)
	}
	if req.MemberType != nil {
		if !req.MemberType.Valid() {
			return domain.Member{}, domain.ErrInvalidMemberType
		}
		member.MemberType = *req.MemberType
	}
	if req.InitiationDate != nil {
		member.InitiationDate = req.InitiationDate
	}
	if req.WelcomingDate != nil {
		member.WelcomingDate = req.WelcomingDate
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return domain.Member{}, domain.ErrInvalidStatus
		}
		member.Status = *req.Status
	}

	if member.MemberType == domain.MemberTypeWelcome && member.WelcomingDate == nil {
		return domain.Member{}, domain.ErrWelcomingDateRequired
	}

	if err := s.repo.Update(ctx, s.db, member); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Member{}, s.classifyDuplicate(ctx, member.Email)
		}
		return domain.Member{}, err
	}

	return *member, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	memberID, err := s.parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, memberID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("member deleted", zap.String("member_id", memberID.String()))
	return nil
}

// classifyDuplicate decides which unique key fired. The batch number was
// pre-checked, so an email hit means the email constraint; anything else
// is a batch-number race.
func (s *Service) classifyDuplicate(ctx context.Context, email string) error {
	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err == nil && existing != nil {
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicateBatchNumber
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
