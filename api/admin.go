package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// adminRefreshLeaderboard is an internal only api to trigger the task to
// recompute leaderboard ranks
func (s *Server) adminRefreshLeaderboard(c *gin.Context) {
	if err := s.enqueuer.RefreshLeaderboard(c.Request.Context()); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
