package domain

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	paymentdomain "github.com/kapitulo/kapitulo/internal/payment/domain"
	"github.com/kapitulo/kapitulo/pkg/money"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func paymentOn(memberID snowflake.ID, date time.Time, amount money.Amount) paymentdomain.Payment {
	return paymentdomain.Payment{
		MemberID:    memberID,
		Amount:      amount,
		PaymentDate: date,
	}
}

func TestPaymentStatusOf(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		want  PaymentStatus
	}{
		{"no payments", nil, PaymentStatusOverdue},
		{"paid this month", []time.Time{time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)}, PaymentStatusPaid},
		{"paid exactly on the first of this month", []time.Time{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, PaymentStatusPaid},
		{"paid last month", []time.Time{time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)}, PaymentStatusPending},
		{"paid exactly on the first of last month", []time.Time{time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}, PaymentStatusPending},
		{"paid two months ago", []time.Time{time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)}, PaymentStatusOverdue},
		{"latest payment wins", []time.Time{
			time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		}, PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payments []paymentdomain.Payment
			for _, d := range tt.dates {
				payments = append(payments, paymentOn(1, d, money.FromMajor(100)))
			}
			require.Equal(t, tt.want, PaymentStatusOf(payments, testNow))
		})
	}
}

func TestComputeDashboardStatsBucketsSumToTotal(t *testing.T) {
	members := []memberdomain.Member{
		{ID: 1, Name: "paid"},
		{ID: 2, Name: "pending"},
		{ID: 3, Name: "overdue"},
		{ID: 4, Name: "never paid"},
	}
	payments := []paymentdomain.Payment{
		paymentOn(1, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), money.FromMajor(100)),
		paymentOn(2, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), money.FromMajor(100)),
		paymentOn(3, time.Date(2023, 12, 10, 0, 0, 0, 0, time.UTC), money.FromMajor(100)),
	}

	stats := ComputeDashboardStats(members, payments, testNow)
	require.Equal(t, DashboardStats{
		TotalMembers:   4,
		PaidMembers:    1,
		PendingMembers: 1,
		OverdueMembers: 2,
	}, stats)
	require.Equal(t, stats.TotalMembers, stats.PaidMembers+stats.PendingMembers+stats.OverdueMembers)
}

func TestBuildMonthlyReport(t *testing.T) {
	payments := []paymentdomain.Payment{
		paymentOn(1, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), money.FromMajor(100)),
		paymentOn(2, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), money.FromMajor(200)),
		paymentOn(1, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), money.FromMajor(50)),
	}

	year := 2024
	month := 1 // February, zero-indexed
	report := BuildMonthlyReport(payments, MonthlyReportRequest{Year: &year, Month: &month})

	require.Equal(t, 2, report.Count)
	require.Equal(t, money.FromMajor(300), report.Total)
	require.Equal(t, 2, report.DistinctPayers)
	require.Equal(t, money.FromMajor(150), report.Average)

	// Trend spans all payments, newest period first.
	require.Len(t, report.Trend, 2)
	require.Equal(t, 2, report.Trend[0].Month)
	require.Equal(t, 1, report.Trend[1].Month)
}

func TestBuildMonthlyReportEmptyFilter(t *testing.T) {
	payments := []paymentdomain.Payment{
		paymentOn(1, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), money.FromMajor(100)),
	}

	year := 1999
	report := BuildMonthlyReport(payments, MonthlyReportRequest{Year: &year})
	require.Zero(t, report.Count)
	require.Zero(t, report.Total)
	require.Zero(t, report.Average, "empty filter yields zero average, not a division by zero")
}

func TestBuildTrendCapsPeriods(t *testing.T) {
	var payments []paymentdomain.Payment
	for m := 1; m <= 10; m++ {
		payments = append(payments, paymentOn(1, time.Date(2024, time.Month(m), 1, 0, 0, 0, 0, time.UTC), money.FromMajor(10)))
	}

	report := BuildMonthlyReport(payments, MonthlyReportRequest{})
	require.Len(t, report.Trend, TrendPeriods)
	require.Equal(t, 9, report.Trend[0].Month, "newest period comes first")
}

func TestBuildMemberSummariesLeaderboard(t *testing.T) {
	members := []memberdomain.Member{
		{ID: 1, Name: "small", BatchNumber: "b1"},
		{ID: 2, Name: "big", BatchNumber: "b2"},
	}
	payments := []paymentdomain.Payment{
		paymentOn(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), money.FromMajor(100)),
		paymentOn(2, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), money.FromMajor(500)),
	}

	summaries := BuildMemberSummaries(members, payments, nil)
	require.Len(t, summaries, 2)
	require.Equal(t, "big", summaries[0].MemberName)
	require.Equal(t, money.FromMajor(500), summaries[0].CombinedTotal)
	require.NotNil(t, summaries[0].LastPayment)
	require.Nil(t, summaries[0].LastContribution)
}

func TestComputePortalStatus(t *testing.T) {
	member := memberdomain.Member{ID: 1, Name: "Juan Dela Cruz", BatchNumber: "2020-001"}
	dues := money.FromMajor(100)

	tests := []struct {
		name     string
		payments []paymentdomain.Payment
		wantPaid money.Amount
		want     PortalDuesStatus
	}{
		{"nothing this month", nil, 0, PortalDuesPending},
		{"partial", []paymentdomain.Payment{
			paymentOn(1, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), money.FromMajor(40)),
		}, money.FromMajor(40), PortalDuesPartial},
		{"paid across two payments", []paymentdomain.Payment{
			paymentOn(1, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), money.FromMajor(60)),
			paymentOn(1, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), money.FromMajor(40)),
		}, money.FromMajor(100), PortalDuesPaid},
		{"last month's payment does not count", []paymentdomain.Payment{
			paymentOn(1, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), money.FromMajor(500)),
		}, 0, PortalDuesPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paid, status := ComputePortalStatus(member, tt.payments, testNow, dues)
			require.Equal(t, tt.wantPaid, paid)
			require.Equal(t, tt.want, status)
		})
	}
}
