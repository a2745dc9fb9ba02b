package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reliefhub/relief-api/donation"
)

// recordDonation is the API for a donor to record a GCash transfer to a
// money request
func (s *Server) recordDonation(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	var params donation.RecordParams
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	d, err := s.donations.Record(c.Request.Context(), donation.Donor{ID: account.ID, Name: account.Name}, params)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusCreated, d)
}

func (s *Server) myDonations(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	donations, err := s.donations.ListByDonor(account.ID)
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	responseList(c, donations, len(donations))
}

func (s *Server) requestDonations(c *gin.Context) {
	donations, err := s.donations.ListByRequest(c.Param("requestID"))
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	responseList(c, donations, len(donations))
}
