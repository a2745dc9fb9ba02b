package score

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/consts"
	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/schema"
	"github.com/reliefhub/relief-api/store"
)

const (
	logPrefix        = "score"
	maxCommentLength = 500
)

// ErrAlreadyAwarded is returned by Award for a request that is not completed
// or whose volunteer was credited already
var ErrAlreadyAwarded = errors.New("request already awarded")

// Award is what a volunteer received for one confirmed completion
type Award struct {
	Points            int      `json:"points"`
	Badges            []string `json:"badges"`
	CompletedRequests int      `json:"completed_requests"`
}

// ReviewParams is a requester's rating of the volunteer of a completed request
type ReviewParams struct {
	RequestID  primitive.ObjectID
	RevieweeID string
	Rating     int
	Comment    string
}

// Engine maintains points, badges, ratings and leaderboard positions
type Engine struct {
	users    store.UserStore
	reviews  store.ReviewStore
	requests store.RequestStore
	now      func() time.Time
}

func NewEngine(users store.UserStore, reviews store.ReviewStore, requests store.RequestStore) *Engine {
	return &Engine{
		users:    users,
		reviews:  reviews,
		requests: requests,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Award credits the volunteer of a completed request with its points,
// refreshes the volunteer's rating and grants any milestone badge reached.
// The request is claimed first, so repeated calls credit it once. Badges
// already held are never granted again.
func (e *Engine) Award(ctx context.Context, volunteerID string, req *schema.Request) (*Award, error) {
	if _, err := e.requests.ClaimAward(ctx, req.ID, e.now()); err != nil {
		if errors.Is(err, store.ErrNotMatched) {
			return nil, ErrAlreadyAwarded
		}
		return nil, err
	}

	points := PointsFor(req.Urgency)
	logger := log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"volunteer": volunteerID,
		"request":   req.ID.Hex(),
	})

	u, err := e.users.IncrementCompletion(ctx, volunteerID, points)
	if err != nil {
		// give the claim back so a retry can apply the award
		if err := e.requests.ReleaseAward(ctx, req.ID); err != nil {
			logger.WithError(err).Error("release award claim")
		}
		return nil, err
	}

	award := &Award{
		Points:            points,
		Badges:            make([]string, 0),
		CompletedRequests: u.Stats.CompletedRequests,
	}

	if err := e.refreshRating(ctx, volunteerID); err != nil {
		logger.WithError(err).Warn("refresh rating")
	}

	for _, name := range NewBadges(u) {
		granted, err := e.users.GrantBadge(ctx, volunteerID, schema.Badge{
			Name:     name,
			Type:     consts.MilestoneBadge,
			EarnedAt: e.now(),
		})
		if err != nil {
			// missing badges are granted again on the next completion
			logger.WithError(err).WithField("badge", name).Warn("grant badge")
			break
		}
		if granted {
			award.Badges = append(award.Badges, name)
		}
	}

	logger.WithFields(log.Fields{
		"points": points,
		"badges": award.Badges,
	}).Info("awarded completion")

	return award, nil
}

// refreshRating recomputes the rating stats of a user from visible reviews
func (e *Engine) refreshRating(ctx context.Context, userID string) error {
	summary, err := e.reviews.RatingSummary(ctx, userID)
	if err != nil {
		return err
	}
	return e.users.SetRatingStats(ctx, userID, summary, 0)
}

// ApplyReview records the requester's rating of the volunteer who completed
// the request. A five star rating adds a bonus to the volunteer's points.
func (e *Engine) ApplyReview(ctx context.Context, reviewerID string, params ReviewParams) (*schema.Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, fault.Validationf("rating must be between 1 and 5")
	}
	if utf8.RuneCountInString(params.Comment) > maxCommentLength {
		return nil, fault.Validationf("comment must be at most %d characters", maxCommentLength)
	}

	req, err := e.requests.GetRequest(ctx, params.RequestID)
	if err != nil {
		if errors.Is(err, store.ErrRequestNotFound) {
			return nil, fault.NotFoundf("request not found")
		}
		return nil, err
	}

	if req.RequesterID != reviewerID {
		return nil, fault.NotAuthorizedf("only the requester can review this request")
	}
	if req.Status != schema.RequestCompleted {
		return nil, fault.Transition("review", "completed")
	}
	if params.RevieweeID != "" && params.RevieweeID != req.VolunteerID {
		return nil, fault.Validationf("reviewee is not the volunteer of this request")
	}

	review := schema.Review{
		ReviewerID: reviewerID,
		RevieweeID: req.VolunteerID,
		RequestID:  req.ID,
		Rating:     params.Rating,
		Comment:    params.Comment,
		IsVisible:  true,
		CreatedAt:  e.now(),
	}
	if err := e.reviews.CreateReview(ctx, &review); err != nil {
		if errors.Is(err, store.ErrReviewExists) {
			return nil, fault.Conflictf("request already reviewed")
		}
		return nil, err
	}

	summary, err := e.reviews.RatingSummary(ctx, review.RevieweeID)
	if err != nil {
		return &review, err
	}

	bonus := 0
	if review.Rating == 5 {
		bonus = consts.FiveStarBonus
	}
	if err := e.users.SetRatingStats(ctx, review.RevieweeID, summary, bonus); err != nil {
		return &review, err
	}

	return &review, nil
}

// Reviews lists the visible reviews of a user with their rating summary
func (e *Engine) Reviews(ctx context.Context, userID string) ([]schema.Review, schema.RatingSummary, error) {
	reviews, err := e.reviews.ListReviews(ctx, userID)
	if err != nil {
		return nil, schema.RatingSummary{}, err
	}
	summary, err := e.reviews.RatingSummary(ctx, userID)
	if err != nil {
		return nil, schema.RatingSummary{}, err
	}
	return reviews, summary, nil
}

// Leaderboard returns the top users of a filter with freshly computed ranks
func (e *Engine) Leaderboard(ctx context.Context, filter schema.LeaderboardFilter, limit int64) ([]schema.User, error) {
	switch filter {
	case "":
		filter = schema.LeaderboardAll
	case schema.LeaderboardAll, schema.LeaderboardDonors, schema.LeaderboardVolunteers, schema.LeaderboardOrganizations:
	default:
		return nil, fault.Validationf("unknown leaderboard filter %q", filter)
	}
	if limit <= 0 || limit > consts.LeaderboardLimit {
		limit = consts.LeaderboardLimit
	}

	users, err := e.users.Leaderboard(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	return Rank(users), nil
}

// Standing computes where the user stands among all active users
func (e *Engine) Standing(ctx context.Context, userID string) (*schema.User, Standing, error) {
	u, err := e.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, Standing{}, fault.NotFoundf("user not found")
		}
		return nil, Standing{}, err
	}

	users, err := e.users.ListActiveUsers(ctx)
	if err != nil {
		return nil, Standing{}, err
	}

	ranked := Rank(users)
	s := Standing{TotalUsers: len(ranked)}
	for _, r := range ranked {
		if r.ID == userID {
			s.Rank = r.LeaderboardRank
			break
		}
	}
	s.Percentile = Percentile(s.Rank, s.TotalUsers)
	u.LeaderboardRank = s.Rank

	return u, s, nil
}

// RefreshLeaderboard recomputes and stores the rank of every active user
func (e *Engine) RefreshLeaderboard(ctx context.Context) (int, error) {
	users, err := e.users.ListActiveUsers(ctx)
	if err != nil {
		return 0, err
	}

	ranks := make(map[string]int, len(users))
	for _, u := range Rank(users) {
		ranks[u.ID] = u.LeaderboardRank
	}

	if err := e.users.SetLeaderboardRanks(ctx, ranks); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "users": len(ranks)}).Info("refreshed leaderboard")
	return len(ranks), nil
}
