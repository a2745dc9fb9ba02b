package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/consts"
	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/lifecycle"
	"github.com/reliefhub/relief-api/schema"
)

func actorOf(u *schema.User) lifecycle.Actor {
	return lifecycle.Actor{ID: u.ID, Name: u.Name}
}

// objectIDParam parses a hex object id from the path. It aborts the request
// when the id is malformed.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithFault(c, fault.Validationf("invalid %s", name))
		return primitive.NilObjectID, false
	}
	return id, true
}

func parseChatID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("chatID"))
	if err != nil {
		return primitive.NilObjectID, fault.Validationf("invalid chatID")
	}
	return id, nil
}

// createRequest is the API to post a new relief request
func (s *Server) createRequest(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	var params lifecycle.CreateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	r, err := s.requests.Create(c.Request.Context(), actorOf(account), params)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusCreated, r)
}

// listOpenRequests is the API to browse open requests. With lat and lng the
// result is ordered by distance.
func (s *Server) listOpenRequests(c *gin.Context) {
	var params struct {
		Type     string `form:"type"`
		Urgency  string `form:"urgency"`
		Lat      string `form:"lat"`
		Lng      string `form:"lng"`
		Distance string `form:"distance"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		abortListWithFault(c, fault.Validationf("invalid query"))
		return
	}

	filter := schema.RequestFilter{
		Type:    schema.RequestType(params.Type),
		Urgency: schema.Urgency(params.Urgency),
	}

	if params.Lat != "" || params.Lng != "" {
		near, err := nearFilter(params.Lat, params.Lng, params.Distance)
		if err != nil {
			abortListWithFault(c, err)
			return
		}
		filter.Near = near
	}

	requests, err := s.requests.ListOpen(c.Request.Context(), filter)
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	responseList(c, requests, len(requests))
}

func nearFilter(lat, lng, distance string) (*schema.NearFilter, error) {
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, fault.Validationf("invalid lat")
	}
	longitude, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, fault.Validationf("invalid lng")
	}

	maxDistance := consts.DefaultNearDistance
	if distance != "" {
		if maxDistance, err = strconv.Atoi(distance); err != nil {
			return nil, fault.Validationf("invalid distance")
		}
	}

	return &schema.NearFilter{
		Longitude:   longitude,
		Latitude:    latitude,
		MaxDistance: maxDistance,
	}, nil
}

// myRequests is the API to list the requests created by the caller
func (s *Server) myRequests(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	requests, err := s.requests.ListMine(c.Request.Context(), account.ID)
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	responseList(c, requests, len(requests))
}

// acceptedRequests is the API to list the requests the caller volunteers for
func (s *Server) acceptedRequests(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	requests, err := s.requests.ListAccepted(c.Request.Context(), account.ID)
	if err != nil {
		abortListWithFault(c, err)
		return
	}

	responseList(c, requests, len(requests))
}

func (s *Server) getRequest(c *gin.Context) {
	id, ok := objectIDParam(c, "requestID")
	if !ok {
		return
	}

	r, err := s.requests.Get(c.Request.Context(), id)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, r)
}

// editRequest is the API for a requester to change the details of a request
func (s *Server) editRequest(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "requestID")
	if !ok {
		return
	}

	var patch schema.RequestPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	r, err := s.requests.Edit(c.Request.Context(), id, actorOf(account), patch)
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, r)
}

// cancelRequest is the API for a requester to withdraw a request
func (s *Server) cancelRequest(c *gin.Context) {
	s.transition(c, s.requests.Cancel)
}

// acceptRequest is the API for a volunteer to claim an open request
func (s *Server) acceptRequest(c *gin.Context) {
	s.transition(c, s.requests.Accept)
}

// markRequestComplete is the API for the volunteer to report the work done
func (s *Server) markRequestComplete(c *gin.Context) {
	s.transition(c, s.requests.MarkComplete)
}

// confirmRequestComplete is the API for the requester to confirm the work
func (s *Server) confirmRequestComplete(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "requestID")
	if !ok {
		return
	}

	completion, err := s.requests.ConfirmComplete(c.Request.Context(), id, actorOf(account))
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, completion)
}

type transitionFunc func(ctx context.Context, requestID primitive.ObjectID, actor lifecycle.Actor) (*schema.Request, error)

func (s *Server) transition(c *gin.Context, fn transitionFunc) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "requestID")
	if !ok {
		return
	}

	r, err := fn(c.Request.Context(), id, actorOf(account))
	if err != nil {
		abortWithFault(c, err)
		return
	}

	responseOK(c, http.StatusOK, r)
}
