package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/kapitulo/kapitulo/internal/payment/domain"
	"github.com/kapitulo/kapitulo/pkg/money"
)

type createPaymentRequest struct {
	MemberID    string       `json:"memberId"`
	Amount      money.Amount `json:"amount"`
	PaymentDate string       `json:"paymentDate"`
	Notes       string       `json:"notes"`
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		AbortWithError(c, newValidationError("paymentDate", "invalid_payment_date", "invalid paymentDate"))
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), paymentdomain.CreatePaymentRequest{
		MemberID:    strings.TrimSpace(req.MemberID),
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Notes:       strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListPayments(c *gin.Context) {
	resp, err := s.paymentSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPaymentsByMember(c *gin.Context) {
	resp, err := s.paymentSvc.ListByMember(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListRecentPayments(c *gin.Context) {
	limit := paymentdomain.DefaultRecentLimit
	if parsed, err := parseOptionalInt(c.Query("limit")); err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	} else if parsed != nil {
		limit = *parsed
	}

	resp, err := s.paymentSvc.Recent(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeletePayment(c *gin.Context) {
	if err := s.paymentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearPayments wipes the payments table. The client gates this behind
// an explicit confirmation dialog.
func (s *Server) ClearPayments(c *gin.Context) {
	deleted, err := s.paymentSvc.ClearAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
