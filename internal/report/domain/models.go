package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	contributiondomain "github.com/kapitulo/kapitulo/internal/contribution/domain"
	paymentdomain "github.com/kapitulo/kapitulo/internal/payment/domain"
	"github.com/kapitulo/kapitulo/pkg/money"
)

// PaymentStatus classifies a member by the age of their latest dues
// payment relative to the current and previous calendar months.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// DashboardStats tallies every member into exactly one status bucket,
// so the buckets always sum to TotalMembers.
type DashboardStats struct {
	TotalMembers   int `json:"totalMembers"`
	PaidMembers    int `json:"paidMembers"`
	PendingMembers int `json:"pendingMembers"`
	OverdueMembers int `json:"overdueMembers"`
}

// PeriodBucket is one (year, month) slice of the payment trend. Month is
// zero-indexed (0 = January) to match the client contract.
type PeriodBucket struct {
	Year           int          `json:"year"`
	Month          int          `json:"month"`
	Total          money.Amount `json:"total"`
	Count          int          `json:"count"`
	DistinctPayers int          `json:"distinctPayers"`
}

// MonthlyReport summarizes payments filtered by an optional year and/or
// zero-indexed month, plus a trailing trend of the most recent periods.
type MonthlyReport struct {
	Count          int            `json:"count"`
	Total          money.Amount   `json:"total"`
	DistinctPayers int            `json:"distinctPayers"`
	Average        money.Amount   `json:"average"`
	Trend          []PeriodBucket `json:"trend"`
}

// TrendPeriods is how many trailing (year, month) buckets a report carries.
const TrendPeriods = 6

// MemberFinancialSummary is one leaderboard row: everything a member has
// put in, across dues and fundraising.
type MemberFinancialSummary struct {
	MemberID          snowflake.ID                      `json:"memberId"`
	MemberName        string                            `json:"memberName"`
	BatchNumber       string                            `json:"batchNumber"`
	PaymentTotal      money.Amount                      `json:"paymentTotal"`
	PaymentCount      int                               `json:"paymentCount"`
	ContributionTotal money.Amount                      `json:"contributionTotal"`
	ContributionCount int                               `json:"contributionCount"`
	CombinedTotal     money.Amount                      `json:"combinedTotal"`
	LastPayment       *paymentdomain.Payment            `json:"lastPayment,omitempty"`
	LastContribution  *contributiondomain.Contribution  `json:"lastContribution,omitempty"`
}

// PortalDuesStatus is the member-portal classification of the current
// month: did the month's payments reach the configured monthly dues.
type PortalDuesStatus string

const (
	PortalDuesPaid    PortalDuesStatus = "paid"
	PortalDuesPartial PortalDuesStatus = "partial"
	PortalDuesPending PortalDuesStatus = "pending"
)

// PortalStatus is the self-service view a member gets when looking up
// their batch number.
type PortalStatus struct {
	MemberID    snowflake.ID     `json:"memberId"`
	MemberName  string           `json:"memberName"`
	BatchNumber string           `json:"batchNumber"`
	MonthPaid   money.Amount     `json:"monthPaid"`
	MonthlyDues money.Amount     `json:"monthlyDues"`
	Currency    string           `json:"currency"`
	Status      PortalDuesStatus `json:"status"`
}

type MonthlyReportRequest struct {
	Year  *int
	Month *int // zero-indexed
}

type Service interface {
	DashboardStats(ctx context.Context) (DashboardStats, error)
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
	MemberSummaries(ctx context.Context) ([]MemberFinancialSummary, error)
	PortalStatus(ctx context.Context, batchNumber string) (PortalStatus, error)
}
