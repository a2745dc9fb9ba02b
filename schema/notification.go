package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationCollection = "notification"
)

type NotificationKind string

const (
	NotificationNewRequest       NotificationKind = "new_request"
	NotificationRequestAccepted  NotificationKind = "request_accepted"
	NotificationRequestCompleted NotificationKind = "request_completed"
	NotificationDonationReceived NotificationKind = "donation_received"
)

type Notification struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID           string              `json:"user_id" bson:"user_id"`
	Kind             NotificationKind    `json:"type" bson:"kind"`
	Message          string              `json:"message" bson:"message"`
	RelatedRequestID *primitive.ObjectID `json:"related_request_id,omitempty" bson:"related_request_id,omitempty"`
	IsRead           bool                `json:"is_read" bson:"is_read"`
	CreatedAt        time.Time           `json:"created_at" bson:"created_at"`
}
