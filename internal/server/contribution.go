package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	contributiondomain "github.com/kapitulo/kapitulo/internal/contribution/domain"
	"github.com/kapitulo/kapitulo/pkg/money"
)

type createContributionRequest struct {
	ActivityID       string       `json:"activityId"`
	MemberID         string       `json:"memberId"`
	Amount           money.Amount `json:"amount"`
	ContributionDate string       `json:"contributionDate"`
	Notes            string       `json:"notes"`
}

func (s *Server) CreateContribution(c *gin.Context) {
	var req createContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	contributionDate, err := parseDate(req.ContributionDate)
	if err != nil {
		AbortWithError(c, newValidationError("contributionDate", "invalid_contribution_date", "invalid contributionDate"))
		return
	}

	resp, err := s.contributionSvc.Create(c.Request.Context(), contributiondomain.CreateContributionRequest{
		ActivityID:       strings.TrimSpace(req.ActivityID),
		MemberID:         strings.TrimSpace(req.MemberID),
		Amount:           req.Amount,
		ContributionDate: contributionDate,
		Notes:            strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListContributions(c *gin.Context) {
	resp, err := s.contributionSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListContributionsByActivity(c *gin.Context) {
	resp, err := s.contributionSvc.ListByActivity(c.Request.Context(), c.Param("activityId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteContribution(c *gin.Context) {
	if err := s.contributionSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
