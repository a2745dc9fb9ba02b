package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reliefhub/relief-api/schema"
)

var (
	ErrChatNotFound = fmt.Errorf("chat not found")
)

type ChatStore interface {
	GetChat(ctx context.Context, id primitive.ObjectID) (*schema.Chat, error)
	GetChatByRequest(ctx context.Context, requestID primitive.ObjectID) (*schema.Chat, error)
	OpenChat(ctx context.Context, chat schema.Chat) (*schema.Chat, error)
	ListChats(ctx context.Context, userID string) ([]schema.Chat, error)
	AppendMessage(ctx context.Context, chatID primitive.ObjectID, msg schema.Message) error
	MarkMessagesRead(ctx context.Context, chatID primitive.ObjectID, readerID string, at time.Time) (int64, error)
	CloseChat(ctx context.Context, requestID primitive.ObjectID) error
	CountUnreadMessages(ctx context.Context, userID string) (int64, error)
}

// GetChat finds a chat by id
func (m *mongoDB) GetChat(ctx context.Context, id primitive.ObjectID) (*schema.Chat, error) {
	return m.findChat(ctx, bson.M{"_id": id})
}

// GetChatByRequest finds the chat bound to a request
func (m *mongoDB) GetChatByRequest(ctx context.Context, requestID primitive.ObjectID) (*schema.Chat, error) {
	return m.findChat(ctx, bson.M{"request_id": requestID})
}

func (m *mongoDB) findChat(ctx context.Context, query bson.M) (*schema.Chat, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var c schema.Chat
	if err := m.collection(schema.ChatCollection).FindOne(ctx, query).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &c, nil
}

// OpenChat returns the chat of chat.RequestID, inserting the given one when
// none exists. Concurrent callers converge on a single document.
func (m *mongoDB) OpenChat(ctx context.Context, chat schema.Chat) (*schema.Chat, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if chat.Messages == nil {
		chat.Messages = []schema.Message{}
	}

	query := bson.M{"request_id": chat.RequestID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"requester_id": chat.RequesterID,
			"volunteer_id": chat.VolunteerID,
			"participants": chat.Participants,
			"messages":     chat.Messages,
			"is_active":    true,
			"created_at":   chat.CreatedAt,
			"updated_at":   chat.UpdatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var c schema.Chat
	err := m.collection(schema.ChatCollection).FindOneAndUpdate(ctx, query, update, opts).Decode(&c)
	if err != nil {
		// a concurrent upsert won the unique index
		if isDuplicateKey(err) {
			return m.GetChatByRequest(ctx, chat.RequestID)
		}
		return nil, err
	}
	return &c, nil
}

// ListChats returns the active chats of a user, most recent activity first
func (m *mongoDB) ListChats(ctx context.Context, userID string) ([]schema.Chat, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "last_message.created_at", Value: -1},
		{Key: "updated_at", Value: -1},
	})
	cursor, err := m.collection(schema.ChatCollection).Find(ctx,
		bson.M{"participants": userID, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}

	chats := make([]schema.Chat, 0)
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// AppendMessage pushes a message at the end of the chat and refreshes the
// cached last message in the same write
func (m *mongoDB) AppendMessage(ctx context.Context, chatID primitive.ObjectID, msg schema.Message) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set": bson.M{
			"last_message": schema.LastMessage{
				Content:   msg.Content,
				SenderID:  msg.SenderID,
				CreatedAt: msg.CreatedAt,
			},
			"updated_at": msg.CreatedAt,
		},
	}

	result, err := m.collection(schema.ChatCollection).UpdateOne(ctx,
		bson.M{"_id": chatID, "participants": msg.SenderID, "is_active": true}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrChatNotFound
	}
	return nil
}

// MarkMessagesRead flags every unread message sent by someone other than the
// reader as read and returns how many messages it flagged. Messages already
// read keep their original read time.
func (m *mongoDB) MarkMessagesRead(ctx context.Context, chatID primitive.ObjectID, readerID string, at time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"messages.$[m].is_read": true,
			"messages.$[m].read_at": at,
		},
	}
	opts := options.FindOneAndUpdate().
		SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{
					"m.sender_id": bson.M{"$ne": readerID},
					"m.is_read":   false,
				},
			},
		}).
		SetProjection(bson.M{"messages.sender_id": 1, "messages.is_read": 1}).
		SetReturnDocument(options.Before)

	// the pre-image holds exactly the messages the update flagged
	var before schema.Chat
	err := m.collection(schema.ChatCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": chatID, "participants": readerID}, update, opts).Decode(&before)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrChatNotFound
		}
		return 0, err
	}

	var count int64
	for _, msg := range before.Messages {
		if msg.SenderID != readerID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

// CloseChat deactivates the chat of a request. A request without a chat is
// not an error.
func (m *mongoDB) CloseChat(ctx context.Context, requestID primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := m.collection(schema.ChatCollection).UpdateOne(ctx,
		bson.M{"request_id": requestID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}})
	return err
}

// CountUnreadMessages counts messages addressed to the user that are unread
// across all of the user's active chats
func (m *mongoDB) CountUnreadMessages(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"participants": userID, "is_active": true}},
		{"$unwind": "$messages"},
		{"$match": bson.M{
			"messages.sender_id": bson.M{"$ne": userID},
			"messages.is_read":   false,
		}},
		{"$count": "unread"},
	}

	cursor, err := m.collection(schema.ChatCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var results []struct {
		Unread int64 `bson:"unread"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Unread, nil
}
