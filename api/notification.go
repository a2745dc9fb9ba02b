package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listNotifications is the API to get the latest notifications of the caller
func (s *Server) listNotifications(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	notifications, unread, err := s.notifications.List(c.Request.Context(), account.ID)
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"data":         notifications,
		"count":        len(notifications),
		"unread_count": unread,
	})
}

func (s *Server) notificationUnreadCount(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	count, err := s.notifications.UnreadCount(c.Request.Context(), account.ID)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, gin.H{"unread_count": count})
}

func (s *Server) markNotificationRead(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "notificationID")
	if !ok {
		return
	}

	n, err := s.notifications.MarkRead(c.Request.Context(), account.ID, id)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, n)
}

func (s *Server) markAllNotificationsRead(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	count, err := s.notifications.MarkAllRead(c.Request.Context(), account.ID)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, gin.H{"marked": count})
}

func (s *Server) deleteNotification(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "notificationID")
	if !ok {
		return
	}

	if err := s.notifications.Delete(c.Request.Context(), account.ID, id); err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, gin.H{"id": id})
}
