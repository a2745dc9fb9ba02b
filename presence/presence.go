package presence

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/schema"
)

// outbound events
const (
	EventChatMessage     = "chat:message"
	EventChatTyping      = "chat:typing"
	EventChatRead        = "chat:read"
	EventRequestUpdate   = "request:update"
	EventNotificationNew = "notification:new"
	EventError           = "error"
)

// inbound events
const (
	EventUserJoin  = "user:join"
	EventChatJoin  = "chat:join"
	EventChatLeave = "chat:leave"
)

// Publisher delivers a live event to every connection in a room. Delivery is
// best-effort and never blocks on slow clients.
type Publisher interface {
	Publish(room, event string, data interface{})
}

func UserRoom(userID string) string {
	return "user:" + userID
}

func ChatRoom(chatID primitive.ObjectID) string {
	return "chat:" + chatID.Hex()
}

// ChatHandler serves the chat events received on a live connection
type ChatHandler interface {
	Authorize(ctx context.Context, chatID primitive.ObjectID, userID string) error
	Send(ctx context.Context, chatID primitive.ObjectID, senderID, content string) (*schema.Message, error)
	MarkRead(ctx context.Context, chatID primitive.ObjectID, readerID string) (int64, error)
	Typing(chatID primitive.ObjectID, userID string, isTyping bool)
	ClearTyping(chatID primitive.ObjectID, userID string)
}

// Frame is the envelope of every event on the live channel
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// ErrorData is the payload of an error event
type ErrorData struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// Discard is a Publisher that drops every event
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(string, string, interface{}) {}
