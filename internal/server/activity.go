package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/kapitulo/kapitulo/internal/activity/domain"
	"github.com/kapitulo/kapitulo/pkg/money"
)

type createActivityRequest struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	TargetAmount money.Amount `json:"targetAmount"`
	Status       string       `json:"status"`
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
}

func (s *Server) CreateActivity(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		AbortWithError(c, newValidationError("startDate", "invalid_start_date", "invalid startDate"))
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		AbortWithError(c, newValidationError("endDate", "invalid_end_date", "invalid endDate"))
		return
	}

	resp, err := s.activitySvc.Create(c.Request.Context(), activitydomain.CreateActivityRequest{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		Status:       activitydomain.ActivityStatus(strings.TrimSpace(req.Status)),
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListActivities(c *gin.Context) {
	resp, err := s.activitySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetActivityByID(c *gin.Context) {
	resp, err := s.activitySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateActivityRequest struct {
	Name         *string       `json:"name"`
	Description  *string       `json:"description"`
	TargetAmount *money.Amount `json:"targetAmount"`
	Status       *string       `json:"status"`
	StartDate    *string       `json:"startDate"`
	EndDate      *string       `json:"endDate"`
}

func (s *Server) UpdateActivity(c *gin.Context) {
	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := activitydomain.UpdateActivityRequest{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
	}
	if req.Status != nil {
		status := activitydomain.ActivityStatus(strings.TrimSpace(*req.Status))
		update.Status = &status
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			AbortWithError(c, newValidationError("startDate", "invalid_start_date", "invalid startDate"))
			return
		}
		update.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseOptionalDate(*req.EndDate)
		if err != nil {
			AbortWithError(c, newValidationError("endDate", "invalid_end_date", "invalid endDate"))
			return
		}
		update.EndDate = endDate
	}

	resp, err := s.activitySvc.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecomputeActivity re-derives the running total from the contribution
// rows. Repair action for totals that drifted outside the write path.
func (s *Server) RecomputeActivity(c *gin.Context) {
	resp, err := s.activitySvc.RecomputeCurrentAmount(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteActivity(c *gin.Context) {
	if err := s.activitySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
