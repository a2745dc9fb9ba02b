package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/score"
)

// createReview is the API for a requester to rate the volunteer of a
// completed request
func (s *Server) createReview(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	var params struct {
		RequestID  string `json:"request_id"`
		RevieweeID string `json:"reviewee_id"`
		Rating     int    `json:"rating"`
		Comment    string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	requestID, err := primitive.ObjectIDFromHex(params.RequestID)
	if err != nil {
		abortWithFault(c, fault.Validationf("invalid request_id"))
		return
	}

	review, err := s.reputation.ApplyReview(c.Request.Context(), account.ID, score.ReviewParams{
		RequestID:  requestID,
		RevieweeID: params.RevieweeID,
		Rating:     params.Rating,
		Comment:    params.Comment,
	})
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusCreated, review)
}

// userReviews is the API to list the reviews a user received
func (s *Server) userReviews(c *gin.Context) {
	reviews, summary, err := s.reputation.Reviews(c.Request.Context(), c.Param("userID"))
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reviews,
		"count":   len(reviews),
		"summary": summary,
	})
}
