package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reliefhub/relief-api/schema"
)

var (
	ErrUserNotFound = fmt.Errorf("user not found")
)

// UserStore reads accounts and maintains their reputation fields
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*schema.User, error)
	ListActiveUserIDs(ctx context.Context, excludeID string, limit int64) ([]string, error)
	ListActiveUsers(ctx context.Context) ([]schema.User, error)
	Leaderboard(ctx context.Context, filter schema.LeaderboardFilter, limit int64) ([]schema.User, error)

	IncrementCompletion(ctx context.Context, userID string, points int) (*schema.User, error)
	GrantBadge(ctx context.Context, userID string, badge schema.Badge) (bool, error)
	SetRatingStats(ctx context.Context, userID string, summary schema.RatingSummary, bonusPoints int) error
	AddDonated(ctx context.Context, userID string, amount float64) error
	SetLeaderboardRanks(ctx context.Context, ranks map[string]int) error
}

// GetUser finds a user by id
func (m *mongoDB) GetUser(ctx context.Context, userID string) (*schema.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u schema.User
	if err := m.collection(schema.UserCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ListActiveUserIDs returns up to limit ids of active users other than excludeID
func (m *mongoDB) ListActiveUserIDs(ctx context.Context, excludeID string, limit int64) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := bson.M{
		"_id":       bson.M{"$ne": excludeID},
		"is_active": true,
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetLimit(limit)

	cursor, err := m.collection(schema.UserCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var results []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// ListActiveUsers returns the ranking projection of every active user
func (m *mongoDB) ListActiveUsers(ctx context.Context) ([]schema.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{
		"name":             1,
		"user_type":        1,
		"is_active":        1,
		"stats":            1,
		"leaderboard_rank": 1,
	})
	cursor, err := m.collection(schema.UserCollection).Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}

	users := make([]schema.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Leaderboard returns active users ordered by points, helps and donations
func (m *mongoDB) Leaderboard(ctx context.Context, filter schema.LeaderboardFilter, limit int64) ([]schema.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := bson.M{"is_active": true}
	switch filter {
	case schema.LeaderboardDonors:
		query["stats.total_donated"] = bson.M{"$gt": 0}
	case schema.LeaderboardVolunteers:
		query["stats.total_helped"] = bson.M{"$gt": 0}
	case schema.LeaderboardOrganizations:
		query["user_type"] = schema.UserOrganization
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "stats.points", Value: -1},
			{Key: "stats.total_helped", Value: -1},
			{Key: "stats.total_donated", Value: -1},
		}).
		SetProjection(bson.M{"name": 1, "user_type": 1, "stats": 1, "badges": 1, "leaderboard_rank": 1}).
		SetLimit(limit)

	cursor, err := m.collection(schema.UserCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	users := make([]schema.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// IncrementCompletion adds one completed help and the awarded points to a
// volunteer and returns the updated user
func (m *mongoDB) IncrementCompletion(ctx context.Context, userID string, points int) (*schema.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{
			"stats.total_helped":       1,
			"stats.completed_requests": 1,
			"stats.points":             points,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u schema.User
	if err := m.collection(schema.UserCollection).FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GrantBadge appends a badge unless the user already holds one with the same
// name. It reports whether the badge was added.
func (m *mongoDB) GrantBadge(ctx context.Context, userID string, badge schema.Badge) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := bson.M{
		"_id":         userID,
		"badges.name": bson.M{"$ne": badge.Name},
	}
	result, err := m.collection(schema.UserCollection).UpdateOne(ctx, query, bson.M{
		"$push": bson.M{"badges": badge},
	})
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// SetRatingStats stores the rating summary and adds review bonus points
func (m *mongoDB) SetRatingStats(ctx context.Context, userID string, summary schema.RatingSummary, bonusPoints int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"stats.average_rating": summary.Average,
			"stats.total_reviews":  summary.Total,
		},
	}
	if bonusPoints != 0 {
		update["$inc"] = bson.M{"stats.points": bonusPoints}
	}

	result, err := m.collection(schema.UserCollection).UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddDonated increases the total donated amount of a donor
func (m *mongoDB) AddDonated(ctx context.Context, userID string, amount float64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := m.collection(schema.UserCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"stats.total_donated": amount}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetLeaderboardRanks writes precomputed ranks in one bulk operation
func (m *mongoDB) SetLeaderboardRanks(ctx context.Context, ranks map[string]int) error {
	if len(ranks) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(ranks))
	for id, rank := range ranks {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": bson.M{"leaderboard_rank": rank}}))
	}

	_, err := m.collection(schema.UserCollection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}
