package service

import (
	"context"
	"strings"

	"github.com/kapitulo/kapitulo/internal/clock"
	"github.com/kapitulo/kapitulo/internal/config"
	contributiondomain "github.com/kapitulo/kapitulo/internal/contribution/domain"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	paymentdomain "github.com/kapitulo/kapitulo/internal/payment/domain"
	"github.com/kapitulo/kapitulo/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB               *gorm.DB
	Log              *zap.Logger
	Clock            clock.Clock
	Dues             *config.DuesPolicyHolder
	MemberRepo       memberdomain.Repository
	PaymentRepo      paymentdomain.Repository
	ContributionRepo contributiondomain.Repository
}

// Service fetches raw rows and hands them to the pure aggregation
// functions in the domain package; it keeps no state of its own.
type Service struct {
	db               *gorm.DB
	log              *zap.Logger
	clock            clock.Clock
	dues             *config.DuesPolicyHolder
	memberRepo       memberdomain.Repository
	paymentRepo      paymentdomain.Repository
	contributionRepo contributiondomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:               p.DB,
		log:              p.Log.Named("report.service"),
		clock:            p.Clock,
		dues:             p.Dues,
		memberRepo:       p.MemberRepo,
		paymentRepo:      p.PaymentRepo,
		contributionRepo: p.ContributionRepo,
	}
}

func (s *Service) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	members, err := s.memberRepo.List(ctx, s.db)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	payments, err := s.paymentRepo.List(ctx, s.db)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	return domain.ComputeDashboardStats(members, payments, s.clock.Now()), nil
}

func (s *Service) MonthlyReport(ctx context.Context, req domain.MonthlyReportRequest) (domain.MonthlyReport, error) {
	payments, err := s.paymentRepo.List(ctx, s.db)
	if err != nil {
		return domain.MonthlyReport{}, err
	}

	return domain.BuildMonthlyReport(payments, req), nil
}

func (s *Service) MemberSummaries(ctx context.Context) ([]domain.MemberFinancialSummary, error) {
	members, err := s.memberRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	contributions, err := s.contributionRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	summaries := domain.BuildMemberSummaries(members, payments, contributions)
	if summaries == nil {
		summaries = []domain.MemberFinancialSummary{}
	}
	return summaries, nil
}

func (s *Service) PortalStatus(ctx context.Context, batchNumber string) (domain.PortalStatus, error) {
	batchNumber = strings.TrimSpace(batchNumber)
	if batchNumber == "" {
		return domain.PortalStatus{}, memberdomain.ErrInvalidBatchNumber
	}

	member, err := s.memberRepo.FindByBatchNumber(ctx, s.db, batchNumber)
	if err != nil {
		return domain.PortalStatus{}, err
	}
	if member == nil {
		return domain.PortalStatus{}, memberdomain.ErrNotFound
	}

	payments, err := s.paymentRepo.ListByMember(ctx, s.db, member.ID)
	if err != nil {
		return domain.PortalStatus{}, err
	}

	policy := s.dues.Get()
	paid, status := domain.ComputePortalStatus(*member, payments, s.clock.Now(), policy.MonthlyDues)

	return domain.PortalStatus{
		MemberID:    member.ID,
		MemberName:  member.Name,
		BatchNumber: member.BatchNumber,
		MonthPaid:   paid,
		MonthlyDues: policy.MonthlyDues,
		Currency:    policy.Currency,
		Status:      status,
	}, nil
}
