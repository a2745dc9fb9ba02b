package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(ctx context.Context, client *mongo.Client, dbName string) *MongoDBIndexer {
	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

// IndexAll creates the indexes of every collection. Existing indexes with
// the same keys are left as they are.
func (m *MongoDBIndexer) IndexAll() error {
	for _, index := range []func() error{
		m.IndexRequestCollection,
		m.IndexUserCollection,
		m.IndexReviewCollection,
		m.IndexChatCollection,
		m.IndexNotificationCollection,
	} {
		if err := index(); err != nil {
			return err
		}
	}
	return nil
}

func (m *MongoDBIndexer) IndexRequestCollection() error {
	if err := m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"location": "2dsphere",
		},
	}); err != nil {
		return err
	}

	if err := m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "is_active", Value: 1},
			{Key: "created_at", Value: -1},
		},
	}); err != nil {
		return err
	}

	if err := m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"requester_id": 1,
		},
	}); err != nil {
		return err
	}

	return m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"volunteer_id": 1,
		},
	})
}

func (m *MongoDBIndexer) IndexUserCollection() error {
	return m.createIndex(UserCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "stats.points", Value: -1},
			{Key: "stats.total_helped", Value: -1},
			{Key: "stats.total_donated", Value: -1},
		},
	})
}

func (m *MongoDBIndexer) IndexReviewCollection() error {
	if err := m.createIndex(ReviewCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "reviewer_id", Value: 1},
			{Key: "request_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	return m.createIndex(ReviewCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "reviewee_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
}

func (m *MongoDBIndexer) IndexChatCollection() error {
	if err := m.createIndex(ChatCollection, mongo.IndexModel{
		Keys: bson.M{
			"request_id": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	return m.createIndex(ChatCollection, mongo.IndexModel{
		Keys: bson.M{
			"participants": 1,
		},
	})
}

func (m *MongoDBIndexer) IndexNotificationCollection() error {
	return m.createIndex(NotificationCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "is_read", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
}
