package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReviewCollection = "review"
)

type Review struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReviewerID string             `json:"reviewer_id" bson:"reviewer_id"`
	RevieweeID string             `json:"reviewee_id" bson:"reviewee_id"`
	RequestID  primitive.ObjectID `json:"request_id" bson:"request_id"`
	Rating     int                `json:"rating" bson:"rating"`
	Comment    string             `json:"comment,omitempty" bson:"comment,omitempty"`
	IsVisible  bool               `json:"is_visible" bson:"is_visible"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// RatingSummary is the aggregate of all visible reviews of a user
type RatingSummary struct {
	Average float64 `bson:"average"`
	Total   int     `bson:"total"`
}
