package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ChatCollection = "chat"
)

type Message struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	SenderID  string             `json:"sender_id" bson:"sender_id"`
	Content   string             `json:"content" bson:"content"`
	IsRead    bool               `json:"is_read" bson:"is_read"`
	ReadAt    *time.Time         `json:"read_at,omitempty" bson:"read_at,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type LastMessage struct {
	Content   string    `json:"content" bson:"content"`
	SenderID  string    `json:"sender_id" bson:"sender_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Chat is the conversation between the requester and the accepted volunteer
// of one request
type Chat struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RequestID    primitive.ObjectID `json:"request_id" bson:"request_id"`
	RequesterID  string             `json:"requester_id" bson:"requester_id"`
	VolunteerID  string             `json:"volunteer_id" bson:"volunteer_id"`
	Participants []string           `json:"participants" bson:"participants"`
	Messages     []Message          `json:"messages" bson:"messages"`
	LastMessage  *LastMessage       `json:"last_message,omitempty" bson:"last_message,omitempty"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// HasParticipant reports whether the user may read or write the chat
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
