package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	jwtrequest "github.com/dgrijalva/jwt-go/request"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/reliefhub/relief-api/background"
	"github.com/reliefhub/relief-api/chat"
	"github.com/reliefhub/relief-api/donation"
	"github.com/reliefhub/relief-api/lifecycle"
	"github.com/reliefhub/relief-api/notification"
	"github.com/reliefhub/relief-api/presence"
	"github.com/reliefhub/relief-api/score"
	"github.com/reliefhub/relief-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Services are the domain components the handlers call into
type Services struct {
	Requests      *lifecycle.Engine
	Chats         *chat.Service
	Notifications *notification.Dispatcher
	Reputation    *score.Engine
	Donations     *donation.Service
	Enqueuer      background.Enqueuer
	Hub           *presence.Hub
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	users   store.UserStore
	pingers []store.Pinger

	// JWT public key of the auth service
	jwtPublicKey *rsa.PublicKey

	requests      *lifecycle.Engine
	chats         *chat.Service
	notifications *notification.Dispatcher
	reputation    *score.Engine
	donations     *donation.Service
	enqueuer      background.Enqueuer
	hub           *presence.Hub
}

// NewServer new instance of server
func NewServer(
	users store.UserStore,
	pingers []store.Pinger,
	jwtKey *rsa.PublicKey,
	services Services) *Server {
	return &Server{
		users:         users,
		pingers:       pingers,
		jwtPublicKey:  jwtKey,
		requests:      services.Requests,
		chats:         services.Chats,
		notifications: services.Notifications,
		reputation:    services.Reputation,
		donations:     services.Donations,
		enqueuer:      services.Enqueuer,
		hub:           services.Hub,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(s.corsMiddleware())

	apiRoute := r.Group("/api")
	apiRoute.Use(requestLogger("API"))
	apiRoute.Use(s.authMiddleware(jwtrequest.AuthorizationHeaderExtractor))
	apiRoute.Use(s.recognizeAccountMiddleware())

	requestRoute := apiRoute.Group("/requests")
	{
		requestRoute.POST("", s.createRequest)
		requestRoute.GET("", s.listOpenRequests)
		requestRoute.GET("/my-requests", s.myRequests)
		requestRoute.GET("/accepted", s.acceptedRequests)
		requestRoute.GET("/:requestID", s.getRequest)
		requestRoute.PUT("/:requestID", s.editRequest)
		requestRoute.DELETE("/:requestID", s.cancelRequest)
		requestRoute.POST("/:requestID/accept", s.acceptRequest)
		requestRoute.POST("/:requestID/mark-complete", s.markRequestComplete)
		requestRoute.POST("/:requestID/confirm-complete", s.confirmRequestComplete)
	}

	chatRoute := apiRoute.Group("/chats")
	{
		chatRoute.GET("", s.listChats)
		chatRoute.GET("/unread-count", s.chatUnreadCount)
		chatRoute.GET("/request/:requestID", s.openChat)
		chatRoute.GET("/:chatID/messages", s.chatMessages)
		chatRoute.POST("/:chatID/messages", s.sendChatMessage)
		chatRoute.PUT("/:chatID/read", s.markChatRead)
	}

	notificationRoute := apiRoute.Group("/notifications")
	{
		notificationRoute.GET("", s.listNotifications)
		notificationRoute.GET("/unread-count", s.notificationUnreadCount)
		notificationRoute.PUT("/mark-all-read", s.markAllNotificationsRead)
		notificationRoute.PUT("/:notificationID/read", s.markNotificationRead)
		notificationRoute.DELETE("/:notificationID", s.deleteNotification)
	}

	userRoute := apiRoute.Group("/users")
	{
		userRoute.GET("/leaderboard", s.leaderboard)
		userRoute.GET("/me/stats", s.myStats)
	}

	profileRoute := apiRoute.Group("/profile")
	{
		profileRoute.POST("/reviews", s.createReview)
		profileRoute.GET("/:userID/reviews", s.userReviews)
	}

	transactionRoute := apiRoute.Group("/transactions")
	{
		transactionRoute.POST("", s.recordDonation)
		transactionRoute.GET("/my-donations", s.myDonations)
		transactionRoute.GET("/request/:requestID", s.requestDonations)
	}

	secretRoute := r.Group("/secret")
	secretRoute.Use(requestLogger("Secret"))
	secretRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.admin")))
	{
		secretRoute.POST("/leaderboard/refresh", s.adminRefreshLeaderboard)
	}

	wsRoute := r.Group("/ws")
	wsRoute.Use(s.authMiddleware(jwtrequest.MultiExtractor{
		jwtrequest.AuthorizationHeaderExtractor,
		jwtrequest.ArgumentExtractor{"token"},
	}))
	wsRoute.Use(s.recognizeAccountMiddleware())
	{
		wsRoute.GET("", s.liveChannel)
	}

	r.GET("/healthz", s.healthz)

	return r
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if origins := viper.GetStringSlice("server.cors_origins"); len(origins) > 0 {
		config.AllowOrigins = origins
	} else {
		config.AllowAllOrigins = true
		config.AllowCredentials = false
	}

	return cors.New(config)
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	for _, p := range s.pingers {
		if shouldInterupt(p.Ping(), c) {
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseOK(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{
		"success": true,
		"data":    data,
	})
}

func responseList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   count,
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	obj.Success = false
	responseWithEncoding(c, code, obj)
	c.Abort()
}

// abortWithFault responds with the status and code of a service error
func abortWithFault(c *gin.Context, err error) {
	code, obj := faultResponse(err)
	abortWithEncoding(c, code, obj, err)
}

// abortListWithFault is abortWithFault for list endpoints, which always
// carry a data array
func abortListWithFault(c *gin.Context, err error) {
	code, obj := faultResponse(err)
	obj.Data = []interface{}{}
	abortWithEncoding(c, code, obj, err)
}
