package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/kapitulo/kapitulo/internal/report/domain"
)

func (s *Server) GetStats(c *gin.Context) {
	resp, err := s.reportSvc.DashboardStats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetMonthlyReport(c *gin.Context) {
	year, err := parseOptionalInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}
	month, err := parseOptionalInt(c.Query("month"))
	if err != nil {
		AbortWithError(c, newValidationError("month", "invalid_month", "invalid month"))
		return
	}
	if month != nil && (*month < 0 || *month > 11) {
		AbortWithError(c, newValidationError("month", "invalid_month", "month must be between 0 and 11"))
		return
	}

	resp, err := s.reportSvc.MonthlyReport(c.Request.Context(), reportdomain.MonthlyReportRequest{
		Year:  year,
		Month: month,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListMemberSummaries(c *gin.Context) {
	resp, err := s.reportSvc.MemberSummaries(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
