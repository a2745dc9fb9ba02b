package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reliefhub/relief-api/schema"
)

var (
	ErrNotificationNotFound = fmt.Errorf("notification not found")
)

// NotificationStore keeps the durable log of notifications. All mutations are
// scoped to the owning user.
type NotificationStore interface {
	InsertNotifications(ctx context.Context, notifications []schema.Notification) ([]schema.Notification, error)
	ListNotifications(ctx context.Context, userID string, limit int64) ([]schema.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int64, error)
	MarkNotificationRead(ctx context.Context, userID string, id primitive.ObjectID) (*schema.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
	DeleteNotification(ctx context.Context, userID string, id primitive.ObjectID) error
}

// InsertNotifications stores notifications and returns them with ids assigned
func (m *mongoDB) InsertNotifications(ctx context.Context, notifications []schema.Notification) ([]schema.Notification, error) {
	if len(notifications) == 0 {
		return notifications, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	docs := make([]interface{}, 0, len(notifications))
	for i := range notifications {
		if notifications[i].ID.IsZero() {
			notifications[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, notifications[i])
	}

	if _, err := m.collection(schema.NotificationCollection).InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return notifications, nil
}

// ListNotifications returns the latest notifications of a user
func (m *mongoDB) ListNotifications(ctx context.Context, userID string, limit int64) ([]schema.Notification, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cursor, err := m.collection(schema.NotificationCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}

	notifications := make([]schema.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (m *mongoDB) CountUnreadNotifications(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return m.collection(schema.NotificationCollection).CountDocuments(ctx, bson.M{
		"user_id": userID,
		"is_read": false,
	})
}

// MarkNotificationRead flags one notification of the user as read
func (m *mongoDB) MarkNotificationRead(ctx context.Context, userID string, id primitive.ObjectID) (*schema.Notification, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n schema.Notification
	err := m.collection(schema.NotificationCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
		opts).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

// MarkAllNotificationsRead flags every unread notification of the user
func (m *mongoDB) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := m.collection(schema.NotificationCollection).UpdateMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// DeleteNotification removes one notification of the user
func (m *mongoDB) DeleteNotification(ctx context.Context, userID string, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := m.collection(schema.NotificationCollection).DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
