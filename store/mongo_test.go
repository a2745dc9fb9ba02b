package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reliefhub/relief-api/schema"
)

type MongoTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
	store        MongoStore
	now          time.Time
}

func NewMongoTestSuite(connURI, dbName string) *MongoTestSuite {
	return &MongoTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *MongoTestSuite) SetupSuite() {
	opts := options.Client().ApplyURI(s.connURI).SetServerSelectionTimeout(2 * time.Second)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := mongoClient.Connect(ctx); err != nil {
		s.T().Skipf("mongo is not reachable: %s", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		s.T().Skipf("mongo is not reachable: %s", err)
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)
	s.store = NewMongoStore(mongoClient, s.testDBName)
	s.now = time.Now().UTC().Truncate(time.Millisecond)
}

func (s *MongoTestSuite) SetupTest() {
	// every test runs against a clean database
	s.Require().NoError(s.testDatabase.Drop(context.Background()))
	s.Require().NoError(schema.NewMongoDBIndexer(context.Background(), s.mongoClient, s.testDBName).IndexAll())
}

func (s *MongoTestSuite) TearDownSuite() {
	if s.mongoClient != nil {
		_ = s.testDatabase.Drop(context.Background())
		_ = s.mongoClient.Disconnect(context.Background())
	}
}

func (s *MongoTestSuite) createOpenRequest() *schema.Request {
	r := &schema.Request{
		RequesterID: "requester",
		Type:        schema.RequestTypeFood,
		Title:       "Rice",
		Description: "Flooded",
		Category:    "food",
		Urgency:     schema.UrgencyHigh,
		Items:       []string{"food"},
		Status:      schema.RequestOpen,
		Location: schema.RequestLocation{
			Type:        "Point",
			Coordinates: []float64{121.0437, 14.6760},
		},
		IsActive:  true,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	s.Require().NoError(s.store.CreateRequest(context.Background(), r))
	return r
}

func (s *MongoTestSuite) TestAcceptHasSingleWinner() {
	r := s.createOpenRequest()

	const volunteers = 10
	errs := make([]error, volunteers)

	var wg sync.WaitGroup
	for i := 0; i < volunteers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.store.AcceptRequest(context.Background(), r.ID, fmt.Sprintf("volunteer-%d", i), s.now)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			s.Equal(ErrNotMatched, err)
		}
	}
	s.Equal(1, wins)

	got, err := s.store.GetRequest(context.Background(), r.ID)
	s.Require().NoError(err)
	s.Equal(schema.RequestAccepted, got.Status)
	s.NotEmpty(got.VolunteerID)
}

func (s *MongoTestSuite) TestAcceptOwnRequest() {
	r := s.createOpenRequest()

	_, err := s.store.AcceptRequest(context.Background(), r.ID, "requester", s.now)
	s.Equal(ErrNotMatched, err)
}

func (s *MongoTestSuite) TestCompletionIsTwoPhase() {
	ctx := context.Background()
	r := s.createOpenRequest()

	_, err := s.store.AcceptRequest(ctx, r.ID, "volunteer", s.now)
	s.Require().NoError(err)

	_, err = s.store.ConfirmRequestComplete(ctx, r.ID, "requester", s.now)
	s.Equal(ErrNotMatched, err)

	_, err = s.store.MarkRequestComplete(ctx, r.ID, "someone-else", s.now)
	s.Equal(ErrNotMatched, err)

	marked, err := s.store.MarkRequestComplete(ctx, r.ID, "volunteer", s.now)
	s.Require().NoError(err)
	s.True(marked.AwaitingConfirmation())

	completed, err := s.store.ConfirmRequestComplete(ctx, r.ID, "requester", s.now)
	s.Require().NoError(err)
	s.Equal(schema.RequestCompleted, completed.Status)
	s.Equal("volunteer", completed.VolunteerID)

	_, err = s.store.ConfirmRequestComplete(ctx, r.ID, "requester", s.now)
	s.Equal(ErrNotMatched, err)

	_, err = s.store.CancelRequest(ctx, r.ID, "requester", s.now)
	s.Equal(ErrNotMatched, err)
}

func (s *MongoTestSuite) TestCancelAcceptedClearsVolunteer() {
	ctx := context.Background()
	r := s.createOpenRequest()

	_, err := s.store.AcceptRequest(ctx, r.ID, "volunteer", s.now)
	s.Require().NoError(err)

	before, err := s.store.CancelRequest(ctx, r.ID, "requester", s.now)
	s.Require().NoError(err)
	s.Equal("volunteer", before.VolunteerID)

	after, err := s.store.GetRequest(ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(schema.RequestCancelled, after.Status)
	s.False(after.IsActive)
	s.Empty(after.VolunteerID)
}

func (s *MongoTestSuite) TestListOpenRequestsNear() {
	ctx := context.Background()
	near := s.createOpenRequest()

	far := s.createOpenRequest()
	_, err := s.testDatabase.Collection(schema.RequestCollection).UpdateOne(ctx,
		bson.M{"_id": far.ID},
		bson.M{"$set": bson.M{"location.coordinates": []float64{125.6, 7.07}}})
	s.Require().NoError(err)

	requests, err := s.store.ListOpenRequests(ctx, schema.RequestFilter{
		Near: &schema.NearFilter{Longitude: 121.04, Latitude: 14.67, MaxDistance: 10000},
	})
	s.Require().NoError(err)
	s.Len(requests, 1)
	s.Equal(near.ID, requests[0].ID)
}

func (s *MongoTestSuite) TestEditRejectedWhenCompleted() {
	ctx := context.Background()
	r := s.createOpenRequest()
	title := "Rice and water"

	edited, err := s.store.UpdateRequest(ctx, r.ID, "requester", schema.RequestPatch{Title: &title}, s.now)
	s.Require().NoError(err)
	s.Equal(title, edited.Title)
	s.Equal(schema.RequestOpen, edited.Status)

	_, err = s.store.UpdateRequest(ctx, r.ID, "other", schema.RequestPatch{Title: &title}, s.now)
	s.Equal(ErrNotMatched, err)

	_, err = s.store.AcceptRequest(ctx, r.ID, "volunteer", s.now)
	s.Require().NoError(err)
	_, err = s.store.MarkRequestComplete(ctx, r.ID, "volunteer", s.now)
	s.Require().NoError(err)
	_, err = s.store.ConfirmRequestComplete(ctx, r.ID, "requester", s.now)
	s.Require().NoError(err)

	_, err = s.store.UpdateRequest(ctx, r.ID, "requester", schema.RequestPatch{Title: &title}, s.now)
	s.Equal(ErrNotMatched, err)
}

func (s *MongoTestSuite) TestChatReadReceipts() {
	ctx := context.Background()
	requestID := primitive.NewObjectID()

	c, err := s.store.OpenChat(ctx, schema.Chat{
		RequestID:    requestID,
		RequesterID:  "requester",
		VolunteerID:  "volunteer",
		Participants: []string{"requester", "volunteer"},
		CreatedAt:    s.now,
		UpdatedAt:    s.now,
	})
	s.Require().NoError(err)

	again, err := s.store.OpenChat(ctx, schema.Chat{RequestID: requestID})
	s.Require().NoError(err)
	s.Equal(c.ID, again.ID)

	for i, sender := range []string{"requester", "volunteer", "requester"} {
		s.Require().NoError(s.store.AppendMessage(ctx, c.ID, schema.Message{
			ID:        primitive.NewObjectID(),
			SenderID:  sender,
			Content:   fmt.Sprintf("message %d", i),
			CreatedAt: s.now.Add(time.Duration(i) * time.Second),
		}))
	}
	s.Equal(ErrChatNotFound, s.store.AppendMessage(ctx, c.ID, schema.Message{SenderID: "stranger"}))

	unread, err := s.store.CountUnreadMessages(ctx, "volunteer")
	s.Require().NoError(err)
	s.Equal(int64(2), unread)

	marked, err := s.store.MarkMessagesRead(ctx, c.ID, "volunteer", s.now)
	s.Require().NoError(err)
	s.Equal(int64(2), marked)

	marked, err = s.store.MarkMessagesRead(ctx, c.ID, "volunteer", s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.Equal(int64(0), marked)

	got, err := s.store.GetChat(ctx, c.ID)
	s.Require().NoError(err)
	s.Len(got.Messages, 3)
	s.True(got.Messages[0].IsRead)
	s.True(s.now.Equal(*got.Messages[0].ReadAt))
	s.False(got.Messages[1].IsRead)
	s.Equal("message 2", got.LastMessage.Content)

	unread, err = s.store.CountUnreadMessages(ctx, "volunteer")
	s.Require().NoError(err)
	s.Equal(int64(0), unread)

	s.Require().NoError(s.store.CloseChat(ctx, requestID))
	s.Equal(ErrChatNotFound, s.store.AppendMessage(ctx, c.ID, schema.Message{
		ID:        primitive.NewObjectID(),
		SenderID:  "requester",
		Content:   "after close",
		CreatedAt: s.now,
	}))
	closed, err := s.store.GetChat(ctx, c.ID)
	s.Require().NoError(err)
	s.False(closed.IsActive)
}

func (s *MongoTestSuite) TestAwardClaimIsSingleUse() {
	ctx := context.Background()
	r := s.createOpenRequest()

	_, err := s.store.ClaimAward(ctx, r.ID, s.now)
	s.Equal(ErrNotMatched, err)

	_, err = s.store.AcceptRequest(ctx, r.ID, "volunteer", s.now)
	s.Require().NoError(err)
	_, err = s.store.MarkRequestComplete(ctx, r.ID, "volunteer", s.now)
	s.Require().NoError(err)
	_, err = s.store.ConfirmRequestComplete(ctx, r.ID, "requester", s.now)
	s.Require().NoError(err)

	claimed, err := s.store.ClaimAward(ctx, r.ID, s.now)
	s.Require().NoError(err)
	s.NotNil(claimed.AwardedAt)

	_, err = s.store.ClaimAward(ctx, r.ID, s.now)
	s.Equal(ErrNotMatched, err)

	s.Require().NoError(s.store.ReleaseAward(ctx, r.ID))
	_, err = s.store.ClaimAward(ctx, r.ID, s.now)
	s.NoError(err)
}

func (s *MongoTestSuite) TestBadgeGrantIsIdempotent() {
	ctx := context.Background()
	_, err := s.testDatabase.Collection(schema.UserCollection).InsertOne(ctx, schema.User{
		ID:       "volunteer",
		Name:     "Val",
		IsActive: true,
		Badges:   []schema.Badge{},
	})
	s.Require().NoError(err)

	u, err := s.store.IncrementCompletion(ctx, "volunteer", 25)
	s.Require().NoError(err)
	s.Equal(25, u.Stats.Points)
	s.Equal(1, u.Stats.CompletedRequests)

	badge := schema.Badge{Name: "First Help", Type: "milestone", EarnedAt: s.now}
	added, err := s.store.GrantBadge(ctx, "volunteer", badge)
	s.Require().NoError(err)
	s.True(added)

	added, err = s.store.GrantBadge(ctx, "volunteer", badge)
	s.Require().NoError(err)
	s.False(added)

	u, err = s.store.GetUser(ctx, "volunteer")
	s.Require().NoError(err)
	s.Len(u.Badges, 1)
}

func (s *MongoTestSuite) TestDuplicateReview() {
	ctx := context.Background()
	requestID := primitive.NewObjectID()

	for _, rating := range []int{5, 3} {
		err := s.store.CreateReview(ctx, &schema.Review{
			ReviewerID: "requester",
			RevieweeID: "volunteer",
			RequestID:  requestID,
			Rating:     rating,
			IsVisible:  true,
			CreatedAt:  s.now,
		})
		if rating == 5 {
			s.Require().NoError(err)
		} else {
			s.Equal(ErrReviewExists, err)
		}
	}

	s.Require().NoError(s.store.CreateReview(ctx, &schema.Review{
		ReviewerID: "requester",
		RevieweeID: "volunteer",
		RequestID:  primitive.NewObjectID(),
		Rating:     4,
		IsVisible:  true,
		CreatedAt:  s.now,
	}))

	summary, err := s.store.RatingSummary(ctx, "volunteer")
	s.Require().NoError(err)
	s.Equal(4.5, summary.Average)
	s.Equal(2, summary.Total)
}

func (s *MongoTestSuite) TestNotificationsAreOwnerScoped() {
	ctx := context.Background()

	saved, err := s.store.InsertNotifications(ctx, []schema.Notification{
		{UserID: "requester", Kind: schema.NotificationRequestAccepted, Message: "accepted", CreatedAt: s.now},
		{UserID: "volunteer", Kind: schema.NotificationNewRequest, Message: "new", CreatedAt: s.now},
	})
	s.Require().NoError(err)
	s.Len(saved, 2)

	_, err = s.store.MarkNotificationRead(ctx, "volunteer", saved[0].ID)
	s.Equal(ErrNotificationNotFound, err)
	s.Equal(ErrNotificationNotFound, s.store.DeleteNotification(ctx, "volunteer", saved[0].ID))

	n, err := s.store.MarkNotificationRead(ctx, "requester", saved[0].ID)
	s.Require().NoError(err)
	s.True(n.IsRead)

	unread, err := s.store.CountUnreadNotifications(ctx, "volunteer")
	s.Require().NoError(err)
	s.Equal(int64(1), unread)

	count, err := s.store.MarkAllNotificationsRead(ctx, "volunteer")
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func TestMongoTestSuite(t *testing.T) {
	suite.Run(t, NewMongoTestSuite("mongodb://127.0.0.1:27017/?compressors=disabled", "relief-test"))
}
