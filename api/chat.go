package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listChats is the API to list the conversations of the caller
func (s *Server) listChats(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	chats, err := s.chats.List(c.Request.Context(), account.ID)
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	responseList(c, chats, len(chats))
}

func (s *Server) chatUnreadCount(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	count, err := s.chats.UnreadCount(c.Request.Context(), account.ID)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, gin.H{"unread_count": count})
}

// openChat is the API to get the conversation of a request, creating it on
// first use
func (s *Server) openChat(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	requestID, ok := objectIDParam(c, "requestID")
	if !ok {
		return
	}

	chat, err := s.chats.Open(c.Request.Context(), requestID, account.ID)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, chat)
}

// chatMessages is the API to poll the persisted messages of a conversation
func (s *Server) chatMessages(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	chatID, err := parseChatID(c)
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	messages, err := s.chats.Messages(c.Request.Context(), chatID, account.ID)
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	responseList(c, messages, len(messages))
}

func (s *Server) sendChatMessage(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	chatID, ok := objectIDParam(c, "chatID")
	if !ok {
		return
	}

	var params struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	msg, err := s.chats.Send(c.Request.Context(), chatID, account.ID, params.Content)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusCreated, msg)
}

func (s *Server) markChatRead(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	chatID, ok := objectIDParam(c, "chatID")
	if !ok {
		return
	}

	count, err := s.chats.MarkRead(c.Request.Context(), chatID, account.ID)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, gin.H{"marked": count})
}
