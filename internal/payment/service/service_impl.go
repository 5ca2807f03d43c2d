package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/internal/clock"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	"github.com/kapitulo/kapitulo/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	MemberRepo memberdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	memberRepo memberdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("payment.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		memberRepo: p.MemberRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.Payment, error) {
	memberID, err := snowflake.ParseString(strings.TrimSpace(req.MemberID))
	if err != nil || memberID == 0 {
		return domain.Payment{}, domain.ErrInvalidMemberID
	}
	if req.Amount.IsNegative() {
		return domain.Payment{}, domain.ErrInvalidAmount
	}
	if req.PaymentDate.IsZero() {
		return domain.Payment{}, domain.ErrInvalidPaymentDate
	}

	member, err := s.memberRepo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Payment{}, err
	}
	if member == nil {
		return domain.Payment{}, domain.ErrMemberNotFound
	}

	payment := domain.Payment{
		ID:          s.genID.Generate(),
		MemberID:    memberID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate.UTC(),
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &payment); err != nil {
		return domain.Payment{}, err
	}

	return payment, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

func (s *Service) ListByMember(ctx context.Context, memberID string) ([]domain.Payment, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(memberID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidMemberID
	}

	payments, err := s.repo.ListByMember(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]domain.RecentPayment, error) {
	if limit <= 0 {
		limit = domain.DefaultRecentLimit
	}

	recent, err := s.repo.Recent(ctx, s.db, limit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.RecentPayment{}
	}
	return recent, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	paymentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || paymentID == 0 {
		return domain.ErrInvalidID
	}

	affected, err := s.repo.Delete(ctx, s.db, paymentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) ClearAll(ctx context.Context) (int64, error) {
	affected, err := s.repo.DeleteAll(ctx, s.db)
	if err != nil {
		return 0, err
	}

	s.log.Warn("all payments cleared", zap.Int64("deleted", affected))
	return affected, nil
}
