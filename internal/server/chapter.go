package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	chapterdomain "github.com/kapitulo/kapitulo/internal/chapter/domain"
)

func (s *Server) GetChapterInfo(c *gin.Context) {
	resp, err := s.chapterSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type upsertChapterInfoRequest struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	ContactEmail   string `json:"contactEmail"`
	ContactPhone   string `json:"contactPhone"`
	TreasurerName  string `json:"treasurerName"`
	TreasurerEmail string `json:"treasurerEmail"`
}

func (s *Server) UpsertChapterInfo(c *gin.Context) {
	var req upsertChapterInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.chapterSvc.Upsert(c.Request.Context(), chapterdomain.UpsertChapterInfoRequest{
		Name:           req.Name,
		Address:        req.Address,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		TreasurerName:  req.TreasurerName,
		TreasurerEmail: req.TreasurerEmail,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
