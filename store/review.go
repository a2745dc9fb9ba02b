package store

import (
	"context"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reliefhub/relief-api/schema"
)

var (
	ErrReviewExists = fmt.Errorf("request already reviewed")
)

type ReviewStore interface {
	CreateReview(ctx context.Context, r *schema.Review) error
	ListReviews(ctx context.Context, revieweeID string) ([]schema.Review, error)
	RatingSummary(ctx context.Context, revieweeID string) (schema.RatingSummary, error)
}

// CreateReview inserts a review. A second review by the same reviewer for the
// same request is rejected by the unique index.
func (m *mongoDB) CreateReview(ctx context.Context, r *schema.Review) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := m.collection(schema.ReviewCollection).InsertOne(ctx, r)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrReviewExists
		}
		return err
	}
	r.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// ListReviews returns the visible reviews of a user, newest first
func (m *mongoDB) ListReviews(ctx context.Context, revieweeID string) ([]schema.Review, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := m.collection(schema.ReviewCollection).Find(ctx,
		bson.M{"reviewee_id": revieweeID, "is_visible": true},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}

	reviews := make([]schema.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// RatingSummary averages the visible reviews of a user, rounded to one decimal
func (m *mongoDB) RatingSummary(ctx context.Context, revieweeID string) (schema.RatingSummary, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"reviewee_id": revieweeID, "is_visible": true}},
		{"$group": bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"total":   bson.M{"$sum": 1},
		}},
	}

	cursor, err := m.collection(schema.ReviewCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return schema.RatingSummary{}, err
	}

	var results []schema.RatingSummary
	if err := cursor.All(ctx, &results); err != nil {
		return schema.RatingSummary{}, err
	}
	if len(results) == 0 {
		return schema.RatingSummary{}, nil
	}

	summary := results[0]
	summary.Average = math.Round(summary.Average*10) / 10
	return summary, nil
}
