package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/schema"
)

// leaderboard is the API to get the top users of a category
func (s *Server) leaderboard(c *gin.Context) {
	var params struct {
		Filter string `form:"filter"`
		Limit  int64  `form:"limit"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		abortListWithFault(c, fault.Validationf("invalid query"))
		return
	}

	users, err := s.reputation.Leaderboard(c.Request.Context(), schema.LeaderboardFilter(params.Filter), params.Limit)
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	responseList(c, users, len(users))
}

// myStats is the API to get the reputation of the caller and where they
// stand among all users
func (s *Server) myStats(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	u, standing, err := s.reputation.Standing(c.Request.Context(), account.ID)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	donations, err := s.donations.Total(account.ID)
	if shouldInterupt(err, c) {
		return
	}

	responseOK(c, http.StatusOK, gin.H{
		"user":      u,
		"stats":     u.Stats,
		"badges":    u.Badges,
		"standing":  standing,
		"donations": donations,
	})
}
