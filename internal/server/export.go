package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kapitulo/kapitulo/internal/providers/pdf"
	"github.com/kapitulo/kapitulo/pkg/money"
)

// ExportPaymentsPDF renders the full payment history as a downloadable
// tabular report.
func (s *Server) ExportPaymentsPDF(c *gin.Context) {
	ctx := c.Request.Context()

	info, err := s.chapterSvc.Get(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	members, err := s.memberSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	payments, err := s.paymentSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	memberNames := make(map[int64]memberRef, len(members))
	for _, m := range members {
		memberNames[int64(m.ID)] = memberRef{name: m.Name, batchNumber: m.BatchNumber}
	}

	policy := s.dues.Get()
	var total money.Amount
	rows := make([]pdf.PaymentReportRow, 0, len(payments))
	for _, p := range payments {
		total += p.Amount
		ref := memberNames[int64(p.MemberID)]
		rows = append(rows, pdf.PaymentReportRow{
			MemberName:  ref.name,
			BatchNumber: ref.batchNumber,
			PaymentDate: p.PaymentDate.Format(dateOnly),
			Amount:      policy.Currency + " " + p.Amount.String(),
			Notes:       p.Notes,
		})
	}

	chapterName := info.Name
	if chapterName == "" {
		chapterName = s.cfg.AppName
	}

	now := s.clock.Now()
	doc, err := s.pdfProvider.GeneratePaymentReport(ctx, pdf.PaymentReportData{
		ChapterName:    chapterName,
		ChapterAddress: info.Address,
		GeneratedAt:    now.Format(dateOnly),
		Period:         "All time",
		TotalMembers:   len(members),
		TotalPayments:  len(payments),
		TotalCollected: policy.Currency + " " + total.String(),
		Rows:           rows,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="payments-`+now.Format(dateOnly)+`.pdf"`)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, doc)
}

type memberRef struct {
	name        string
	batchNumber string
}

type backupSettings struct {
	ChapterInfo any    `json:"chapterInfo"`
	MonthlyDues string `json:"monthlyDues"`
	Currency    string `json:"currency"`
}

// ExportBackupJSON bundles the chapter's data into one restorable
// document.
func (s *Server) ExportBackupJSON(c *gin.Context) {
	ctx := c.Request.Context()

	info, err := s.chapterSvc.Get(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	members, err := s.memberSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	payments, err := s.paymentSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	policy := s.dues.Get()
	now := s.clock.Now().UTC()

	c.Header("Content-Disposition", `attachment; filename="backup-`+now.Format(dateOnly)+`.json"`)
	c.JSON(http.StatusOK, gin.H{
		"members":  members,
		"payments": payments,
		"settings": backupSettings{
			ChapterInfo: info,
			MonthlyDues: policy.MonthlyDues.String(),
			Currency:    policy.Currency,
		},
		"exportedAt": now,
	})
}
