package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPortalStatus is the self-service dues lookup. It answers only for
// known batch numbers and exposes nothing beyond the member's own
// standing for the current month.
func (s *Server) GetPortalStatus(c *gin.Context) {
	resp, err := s.reportSvc.PortalStatus(c.Request.Context(), c.Param("batchNumber"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
