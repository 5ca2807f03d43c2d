package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/kapitulo/kapitulo/internal/auth/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.authSvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateAccountRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Position *string `json:"position"`
	Password *string `json:"password"`
}

func (s *Server) UpdateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// Token deployments act on the authenticated subject; the open mode
	// has no identity to lean on and takes the id from the body.
	userID := strings.TrimSpace(req.ID)
	if claims := claimsFromContext(c); claims != nil {
		userID = claims.Subject
	}

	resp, err := s.authSvc.UpdateAccount(c.Request.Context(), userID, authdomain.UpdateAccountRequest{
		Name:     req.Name,
		Position: req.Position,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
