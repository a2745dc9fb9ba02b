package api

import (
	"github.com/gin-gonic/gin"
)

// liveChannel upgrades the connection to the websocket used for chat,
// typing, request updates and notifications
func (s *Server) liveChannel(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	if err := s.hub.Serve(c.Writer, c.Request, account.ID); err != nil {
		log.WithError(err).WithField("user", account.ID).Warn("live channel closed")
	}
}
