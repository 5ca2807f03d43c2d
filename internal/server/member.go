package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
)

type createMemberRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	BatchNumber    string `json:"batchNumber"`
	BatchName      string `json:"batchName"`
	Address        string `json:"address"`
	MemberType     string `json:"memberType"`
	InitiationDate string `json:"initiationDate"`
	WelcomingDate  string `json:"welcomingDate"`
	Status         string `json:"status"`
}

func (s *Server) CreateMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	initiationDate, err := parseOptionalDate(req.InitiationDate)
	if err != nil {
		AbortWithError(c, newValidationError("initiationDate", "invalid_initiation_date", "invalid initiationDate"))
		return
	}
	welcomingDate, err := parseOptionalDate(req.WelcomingDate)
	if err != nil {
		AbortWithError(c, newValidationError("welcomingDate", "invalid_welcoming_date", "invalid welcomingDate"))
		return
	}

	resp, err := s.memberSvc.Create(c.Request.Context(), memberdomain.CreateMemberRequest{
		Name:           req.Name,
		Email:          req.Email,
		BatchNumber:    req.BatchNumber,
		BatchName:      req.BatchName,
		Address:        req.Address,
		MemberType:     memberdomain.MemberType(strings.TrimSpace(req.MemberType)),
		InitiationDate: initiationDate,
		WelcomingDate:  welcomingDate,
		Status:         memberdomain.MemberStatus(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListMembers(c *gin.Context) {
	resp, err := s.memberSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetMemberByID(c *gin.Context) {
	resp, err := s.memberSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateMemberRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	BatchNumber    *string `json:"batchNumber"`
	BatchName      *string `json:"batchName"`
	Address        *string `json:"address"`
	MemberType     *string `json:"memberType"`
	InitiationDate *string `json:"initiationDate"`
	WelcomingDate  *string `json:"welcomingDate"`
	Status         *string `json:"status"`
}

func (s *Server) UpdateMember(c *gin.Context) {
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := memberdomain.UpdateMemberRequest{
		Name:        req.Name,
		Email:       req.Email,
		BatchNumber: req.BatchNumber,
		BatchName:   req.BatchName,
		Address:     req.Address,
	}
	if req.MemberType != nil {
		memberType := memberdomain.MemberType(strings.TrimSpace(*req.MemberType))
		update.MemberType = &memberType
	}
	if req.Status != nil {
		status := memberdomain.MemberStatus(strings.TrimSpace(*req.Status))
		update.Status = &status
	}
	if req.InitiationDate != nil {
		initiationDate, err := parseOptionalDate(*req.InitiationDate)
		if err != nil {
			AbortWithError(c, newValidationError("initiationDate", "invalid_initiation_date", "invalid initiationDate"))
			return
		}
		update.InitiationDate = initiationDate
	}
	if req.WelcomingDate != nil {
		welcomingDate, err := parseOptionalDate(*req.WelcomingDate)
		if err != nil {
			AbortWithError(c, newValidationError("welcomingDate", "invalid_welcoming_date", "invalid welcomingDate"))
			return
		}
		update.WelcomingDate = welcomingDate
	}

	resp, err := s.memberSvc.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteMember(c *gin.Context) {
	if err := s.memberSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
