package score

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/schema"
	"github.com/reliefhub/relief-api/store"
	"github.com/reliefhub/relief-api/store/mocks"
)

type EngineTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	users    *mocks.MockUserStore
	reviews  *mocks.MockReviewStore
	requests *mocks.MockRequestStore
	engine   *Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = mocks.NewMockUserStore(s.ctrl)
	s.reviews = mocks.NewMockReviewStore(s.ctrl)
	s.requests = mocks.NewMockRequestStore(s.ctrl)
	s.engine = NewEngine(s.users, s.reviews, s.requests)
}

func (s *EngineTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EngineTestSuite) expectClaim(ctx context.Context, req *schema.Request) {
	awarded := *req
	s.requests.EXPECT().ClaimAward(ctx, req.ID, gomock.Any()).Return(&awarded, nil)
}

func (s *EngineTestSuite) TestAwardFirstCompletion() {
	ctx := context.Background()
	req := &schema.Request{ID: primitive.NewObjectID(), Urgency: schema.UrgencyCritical}
	summary := schema.RatingSummary{Average: 4, Total: 3}

	gomock.InOrder(
		s.requests.EXPECT().ClaimAward(ctx, req.ID, gomock.Any()).Return(req, nil),
		s.users.EXPECT().IncrementCompletion(ctx, "vol", 25).
			Return(&schema.User{ID: "vol", Stats: schema.UserStats{CompletedRequests: 1, Points: 25}}, nil),
		s.reviews.EXPECT().RatingSummary(ctx, "vol").Return(summary, nil),
		s.users.EXPECT().SetRatingStats(ctx, "vol", summary, 0).Return(nil),
		s.users.EXPECT().GrantBadge(ctx, "vol", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, b schema.Badge) (bool, error) {
				s.Equal("First Help", b.Name)
				s.Equal("milestone", b.Type)
				return true, nil
			}),
	)

	award, err := s.engine.Award(ctx, "vol", req)
	s.NoError(err)
	s.Equal(25, award.Points)
	s.Equal([]string{"First Help"}, award.Badges)
	s.Equal(1, award.CompletedRequests)
}

func (s *EngineTestSuite) TestAwardDoesNotRegrantHeldBadge() {
	ctx := context.Background()
	req := &schema.Request{ID: primitive.NewObjectID(), Urgency: schema.UrgencyLow}

	s.expectClaim(ctx, req)
	s.users.EXPECT().IncrementCompletion(ctx, "vol", 10).
		Return(&schema.User{
			ID:     "vol",
			Stats:  schema.UserStats{CompletedRequests: 2},
			Badges: []schema.Badge{{Name: "First Help"}},
		}, nil)
	s.reviews.EXPECT().RatingSummary(ctx, "vol").Return(schema.RatingSummary{}, nil)
	s.users.EXPECT().SetRatingStats(ctx, "vol", schema.RatingSummary{}, 0).Return(nil)

	award, err := s.engine.Award(ctx, "vol", req)
	s.NoError(err)
	s.Empty(award.Badges)
}

func (s *EngineTestSuite) TestAwardRaceLostOnBadge() {
	ctx := context.Background()
	req := &schema.Request{ID: primitive.NewObjectID(), Urgency: schema.UrgencyLow}

	s.expectClaim(ctx, req)
	s.users.EXPECT().IncrementCompletion(ctx, "vol", 10).
		Return(&schema.User{ID: "vol", Stats: schema.UserStats{CompletedRequests: 1}}, nil)
	s.reviews.EXPECT().RatingSummary(ctx, "vol").Return(schema.RatingSummary{}, nil)
	s.users.EXPECT().SetRatingStats(ctx, "vol", gomock.Any(), 0).Return(nil)
	s.users.EXPECT().GrantBadge(ctx, "vol", gomock.Any()).Return(false, nil)

	award, err := s.engine.Award(ctx, "vol", req)
	s.NoError(err)
	s.Empty(award.Badges)
}

func (s *EngineTestSuite) TestAwardAlreadyClaimed() {
	ctx := context.Background()
	req := &schema.Request{ID: primitive.NewObjectID(), Urgency: schema.UrgencyLow}

	s.requests.EXPECT().ClaimAward(ctx, req.ID, gomock.Any()).Return(nil, store.ErrNotMatched)

	award, err := s.engine.Award(ctx, "vol", req)
	s.Nil(award)
	s.Equal(ErrAlreadyAwarded, err)
}

func (s *EngineTestSuite) TestAwardFailureReleasesClaim() {
	ctx := context.Background()
	req := &schema.Request{ID: primitive.NewObjectID(), Urgency: schema.UrgencyLow}

	gomock.InOrder(
		s.requests.EXPECT().ClaimAward(ctx, req.ID, gomock.Any()).Return(req, nil),
		s.users.EXPECT().IncrementCompletion(ctx, "vol", 10).Return(nil, context.DeadlineExceeded),
		s.requests.EXPECT().ReleaseAward(ctx, req.ID).Return(nil),
	)

	award, err := s.engine.Award(ctx, "vol", req)
	s.Nil(award)
	s.Equal(context.DeadlineExceeded, err)
}

func (s *EngineTestSuite) TestAwardKeepsPointsWhenRatingRefreshFails() {
	ctx := context.Background()
	req := &schema.Request{ID: primitive.NewObjectID(), Urgency: schema.UrgencyLow}

	s.expectClaim(ctx, req)
	s.users.EXPECT().IncrementCompletion(ctx, "vol", 10).
		Return(&schema.User{ID: "vol", Stats: schema.UserStats{CompletedRequests: 2}, Badges: []schema.Badge{{Name: "First Help"}}}, nil)
	s.reviews.EXPECT().RatingSummary(ctx, "vol").Return(schema.RatingSummary{}, context.DeadlineExceeded)

	award, err := s.engine.Award(ctx, "vol", req)
	s.NoError(err)
	s.Equal(10, award.Points)
}

func (s *EngineTestSuite) completedRequest() *schema.Request {
	return &schema.Request{
		ID:          primitive.NewObjectID(),
		RequesterID: "req",
		VolunteerID: "vol",
		Status:      schema.RequestCompleted,
	}
}

func (s *EngineTestSuite) TestSubmitFiveStarReview() {
	ctx := context.Background()
	req := s.completedRequest()
	summary := schema.RatingSummary{Average: 4.5, Total: 2}

	s.requests.EXPECT().GetRequest(ctx, req.ID).Return(req, nil)
	s.reviews.EXPECT().CreateReview(ctx, gomock.Any()).Return(nil)
	s.reviews.EXPECT().RatingSummary(ctx, "vol").Return(summary, nil)
	s.users.EXPECT().SetRatingStats(ctx, "vol", summary, 5).Return(nil)

	review, err := s.engine.ApplyReview(ctx, "req", ReviewParams{RequestID: req.ID, Rating: 5, Comment: "thanks"})
	s.NoError(err)
	s.Equal("vol", review.RevieweeID)
	s.True(review.IsVisible)
}

func (s *EngineTestSuite) TestApplyReviewWithoutBonus() {
	ctx := context.Background()
	req := s.completedRequest()

	s.requests.EXPECT().GetRequest(ctx, req.ID).Return(req, nil)
	s.reviews.EXPECT().CreateReview(ctx, gomock.Any()).Return(nil)
	s.reviews.EXPECT().RatingSummary(ctx, "vol").Return(schema.RatingSummary{Average: 3, Total: 1}, nil)
	s.users.EXPECT().SetRatingStats(ctx, "vol", gomock.Any(), 0).Return(nil)

	_, err := s.engine.ApplyReview(ctx, "req", ReviewParams{RequestID: req.ID, Rating: 3})
	s.NoError(err)
}

func (s *EngineTestSuite) TestApplyReviewRejectsBadRating() {
	_, err := s.engine.ApplyReview(context.Background(), "req", ReviewParams{RequestID: primitive.NewObjectID(), Rating: 6})
	s.True(fault.Is(err, fault.Validation))

	_, err = s.engine.ApplyReview(context.Background(), "req", ReviewParams{RequestID: primitive.NewObjectID(), Rating: 0})
	s.True(fault.Is(err, fault.Validation))
}

func (s *EngineTestSuite) TestApplyReviewBeforeCompletion() {
	ctx := context.Background()
	req := s.completedRequest()
	req.Status = schema.RequestAccepted

	s.requests.EXPECT().GetRequest(ctx, req.ID).Return(req, nil)

	_, err := s.engine.ApplyReview(ctx, "req", ReviewParams{RequestID: req.ID, Rating: 4})
	s.True(fault.Is(err, fault.InvalidTransition))
}

func (s *EngineTestSuite) TestApplyReviewByVolunteer() {
	ctx := context.Background()
	req := s.completedRequest()

	s.requests.EXPECT().GetRequest(ctx, req.ID).Return(req, nil)

	_, err := s.engine.ApplyReview(ctx, "vol", ReviewParams{RequestID: req.ID, Rating: 4})
	s.True(fault.Is(err, fault.NotAuthorized))
}

func (s *EngineTestSuite) TestApplyReviewTwice() {
	ctx := context.Background()
	req := s.completedRequest()

	s.requests.EXPECT().GetRequest(ctx, req.ID).Return(req, nil)
	s.reviews.EXPECT().CreateReview(ctx, gomock.Any()).Return(store.ErrReviewExists)

	_, err := s.engine.ApplyReview(ctx, "req", ReviewParams{RequestID: req.ID, Rating: 4})
	s.True(fault.Is(err, fault.Conflict))
}

func (s *EngineTestSuite) TestApplyReviewMissingRequest() {
	ctx := context.Background()
	id := primitive.NewObjectID()

	s.requests.EXPECT().GetRequest(ctx, id).Return(nil, store.ErrRequestNotFound)

	_, err := s.engine.ApplyReview(ctx, "req", ReviewParams{RequestID: id, Rating: 4})
	s.True(fault.Is(err, fault.NotFound))
}

func (s *EngineTestSuite) TestLeaderboardRanks() {
	ctx := context.Background()
	s.users.EXPECT().Leaderboard(ctx, schema.LeaderboardAll, int64(100)).
		Return([]schema.User{user("a", 30, 1, 0), user("b", 30, 1, 0), user("c", 1, 0, 0)}, nil)

	users, err := s.engine.Leaderboard(ctx, "", 0)
	s.NoError(err)
	s.Equal(1, users[0].LeaderboardRank)
	s.Equal(1, users[1].LeaderboardRank)
	s.Equal(3, users[2].LeaderboardRank)
}

func (s *EngineTestSuite) TestLeaderboardUnknownFilter() {
	_, err := s.engine.Leaderboard(context.Background(), "pets", 10)
	s.True(fault.Is(err, fault.Validation))
}

func (s *EngineTestSuite) TestStanding() {
	ctx := context.Background()
	s.users.EXPECT().GetUser(ctx, "b").Return(&schema.User{ID: "b"}, nil)
	s.users.EXPECT().ListActiveUsers(ctx).
		Return([]schema.User{user("a", 50, 0, 0), user("b", 40, 0, 0), user("c", 30, 0, 0), user("d", 0, 0, 0)}, nil)

	u, standing, err := s.engine.Standing(ctx, "b")
	s.NoError(err)
	s.Equal(2, u.LeaderboardRank)
	s.Equal(Standing{Rank: 2, TotalUsers: 4, Percentile: 50}, standing)
}

func (s *EngineTestSuite) TestRefreshLeaderboard() {
	ctx := context.Background()
	s.users.EXPECT().ListActiveUsers(ctx).
		Return([]schema.User{user("a", 1, 0, 0), user("b", 2, 0, 0)}, nil)
	s.users.EXPECT().SetLeaderboardRanks(ctx, map[string]int{"a": 2, "b": 1}).Return(nil)

	n, err := s.engine.RefreshLeaderboard(ctx)
	s.NoError(err)
	s.Equal(2, n)
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
