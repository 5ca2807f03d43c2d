package domain

import (
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	contributiondomain "github.com/kapitulo/kapitulo/internal/contribution/domain"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	paymentdomain "github.com/kapitulo/kapitulo/internal/payment/domain"
	"github.com/kapitulo/kapitulo/pkg/money"
)

// Every function in this file is a pure fold over already-fetched rows.
// They never touch the store and are total over well-formed input.

// MonthStart returns midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PaymentStatusOf buckets one member's payment history against "now".
// No payments means overdue. Otherwise the latest payment date decides:
// on or after the first of this month is paid, on or after the first of
// last month is pending, anything older is overdue. Both boundaries are
// inclusive, so a payment dated exactly on the first lands in the more
// recent bucket.
func PaymentStatusOf(payments []paymentdomain.Payment, now time.Time) PaymentStatus {
	var latest time.Time
	found := false
	for _, p := range payments {
		if !found || p.PaymentDate.After(latest) {
			latest = p.PaymentDate
			found = true
		}
	}
	if !found {
		return PaymentStatusOverdue
	}

	thisMonthStart := MonthStart(now)
	lastMonthStart := MonthStart(thisMonthStart.AddDate(0, -1, 0))

	switch {
	case !latest.Before(thisMonthStart):
		return PaymentStatusPaid
	case !latest.Before(lastMonthStart):
		return PaymentStatusPending
	default:
		return PaymentStatusOverdue
	}
}

// ComputeDashboardStats applies PaymentStatusOf to every member and
// tallies the buckets.
func ComputeDashboardStats(members []memberdomain.Member, payments []paymentdomain.Payment, now time.Time) DashboardStats {
	byMember := make(map[snowflake.ID][]paymentdomain.Payment, len(members))
	for _, p := range payments {
		byMember[p.MemberID] = append(byMember[p.MemberID], p)
	}

	stats := DashboardStats{TotalMembers: len(members)}
	for _, m := range members {
		switch PaymentStatusOf(byMember[m.ID], now) {
		case PaymentStatusPaid:
			stats.PaidMembers++
		case PaymentStatusPending:
			stats.PendingMembers++
		default:
			stats.OverdueMembers++
		}
	}
	return stats
}

// BuildMonthlyReport filters payments by the optional year and
// zero-indexed month, then summarizes them and attaches the trailing
// trend over all payments.
func BuildMonthlyReport(payments []paymentdomain.Payment, req MonthlyReportRequest) MonthlyReport {
	report := MonthlyReport{Trend: buildTrend(payments)}

	payers := make(map[snowflake.ID]struct{})
	for _, p := range payments {
		date := p.PaymentDate.UTC()
		if req.Year != nil && date.Year() != *req.Year {
			continue
		}
		if req.Month != nil && int(date.Month())-1 != *req.Month {
			continue
		}
		report.Count++
		report.Total += p.Amount
		payers[p.MemberID] = struct{}{}
	}
	report.DistinctPayers = len(payers)
	if report.Count > 0 {
		report.Average = money.Amount(int64(report.Total) / int64(report.Count))
	}
	return report
}

type periodKey struct {
	year  int
	month int
}

func buildTrend(payments []paymentdomain.Payment) []PeriodBucket {
	totals := make(map[periodKey]*PeriodBucket)
	payers := make(map[periodKey]map[snowflake.ID]struct{})

	for _, p := range payments {
		date := p.PaymentDate.UTC()
		key := periodKey{year: date.Year(), month: int(date.Month()) - 1}
		bucket := totals[key]
		if bucket == nil {
			bucket = &PeriodBucket{Year: key.year, Month: key.month}
			totals[key] = bucket
			payers[key] = make(map[snowflake.ID]struct{})
		}
		bucket.Total += p.Amount
		bucket.Count++
		payers[key][p.MemberID] = struct{}{}
	}

	trend := make([]PeriodBucket, 0, len(totals))
	for key, bucket := range totals {
		bucket.DistinctPayers = len(payers[key])
		trend = append(trend, *bucket)
	}
	sort.Slice(trend, func(i, j int) bool {
		if trend[i].Year != trend[j].Year {
			return trend[i].Year > trend[j].Year
		}
		return trend[i].Month > trend[j].Month
	})
	if len(trend) > TrendPeriods {
		trend = trend[:TrendPeriods]
	}
	return trend
}

// BuildMemberSummaries joins members to their payments and contributions
// and sorts the result into a leaderboard by combined total, descending.
func BuildMemberSummaries(
	members []memberdomain.Member,
	payments []paymentdomain.Payment,
	contributions []contributiondomain.Contribution,
) []MemberFinancialSummary {
	byID := make(map[snowflake.ID]*MemberFinancialSummary, len(members))
	summaries := make([]MemberFinancialSummary, 0, len(members))
	for _, m := range members {
		summaries = append(summaries, MemberFinancialSummary{
			MemberID:    m.ID,
			MemberName:  m.Name,
			BatchNumber: m.BatchNumber,
		})
	}
	for i := range summaries {
		byID[summaries[i].MemberID] = &summaries[i]
	}

	for _, p := range payments {
		s := byID[p.MemberID]
		if s == nil {
			continue
		}
		s.PaymentTotal += p.Amount
		s.PaymentCount++
		if s.LastPayment == nil || p.PaymentDate.After(s.LastPayment.PaymentDate) {
			p := p
			s.LastPayment = &p
		}
	}
	for _, c := range contributions {
		s := byID[c.MemberID]
		if s == nil {
			continue
		}
		s.ContributionTotal += c.Amount
		s.ContributionCount++
		if s.LastContribution == nil || c.ContributionDate.After(s.LastContribution.ContributionDate) {
			c := c
			s.LastContribution = &c
		}
	}

	for i := range summaries {
		summaries[i].CombinedTotal = summaries[i].PaymentTotal + summaries[i].ContributionTotal
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CombinedTotal > summaries[j].CombinedTotal
	})
	return summaries
}

// ComputePortalStatus sums the member's payments that fall inside the
// current calendar month and classifies them against the dues threshold.
func ComputePortalStatus(member memberdomain.Member, payments []paymentdomain.Payment, now time.Time, monthlyDues money.Amount) (money.Amount, PortalDuesStatus) {
	monthStart := MonthStart(now)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	var paid money.Amount
	for _, p := range payments {
		date := p.PaymentDate.UTC()
		if date.Before(monthStart) || !date.Before(nextMonthStart) {
			continue
		}
		paid += p.Amount
	}

	switch {
	case monthlyDues > 0 && paid >= monthlyDues:
		return paid, PortalDuesPaid
	case paid > 0:
		return paid, PortalDuesPartial
	default:
		return paid, PortalDuesPending
	}
}
