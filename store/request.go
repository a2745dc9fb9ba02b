package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reliefhub/relief-api/consts"
	"github.com/reliefhub/relief-api/schema"
)

var (
	ErrRequestNotFound = fmt.Errorf("request not found")
	// ErrNotMatched is returned by conditional transitions when the request
	// is not in the expected state for the caller. Nothing was written.
	ErrNotMatched = fmt.Errorf("request not in expected state")
)

// RequestStore persists relief requests. Every transition is a single
// conditional update keyed on the expected prior state.
type RequestStore interface {
	CreateRequest(ctx context.Context, r *schema.Request) error
	GetRequest(ctx context.Context, id primitive.ObjectID) (*schema.Request, error)
	ListOpenRequests(ctx context.Context, filter schema.RequestFilter) ([]schema.Request, error)
	ListRequestsByRequester(ctx context.Context, requesterID string) ([]schema.Request, error)
	ListRequestsByVolunteer(ctx context.Context, volunteerID string) ([]schema.Request, error)

	AcceptRequest(ctx context.Context, id primitive.ObjectID, volunteerID string, at time.Time) (*schema.Request, error)
	MarkRequestComplete(ctx context.Context, id primitive.ObjectID, volunteerID string, at time.Time) (*schema.Request, error)
	ConfirmRequestComplete(ctx context.Context, id primitive.ObjectID, requesterID string, at time.Time) (*schema.Request, error)
	CancelRequest(ctx context.Context, id primitive.ObjectID, requesterID string, at time.Time) (*schema.Request, error)
	UpdateRequest(ctx context.Context, id primitive.ObjectID, requesterID string, patch schema.RequestPatch, at time.Time) (*schema.Request, error)

	ClaimAward(ctx context.Context, id primitive.ObjectID, at time.Time) (*schema.Request, error)
	ReleaseAward(ctx context.Context, id primitive.ObjectID) error

	AddAmountReceived(ctx context.Context, id primitive.ObjectID, amount float64) error
}

// CreateRequest inserts a new request and sets its id
func (m *mongoDB) CreateRequest(ctx context.Context, r *schema.Request) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}

	if _, err := m.collection(schema.RequestCollection).InsertOne(ctx, r); err != nil {
		return err
	}
	return nil
}

// GetRequest finds a request by id
func (m *mongoDB) GetRequest(ctx context.Context, id primitive.ObjectID) (*schema.Request, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var r schema.Request
	if err := m.collection(schema.RequestCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &r, nil
}

// ListOpenRequests returns active open requests, newest first. With a near
// filter the result is ordered by distance instead.
func (m *mongoDB) ListOpenRequests(ctx context.Context, filter schema.RequestFilter) ([]schema.Request, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := bson.M{
		"status":    schema.RequestOpen,
		"is_active": true,
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Urgency != "" {
		query["urgency"] = filter.Urgency
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = consts.DefaultRequestListLimit
	}
	opts := options.Find().SetLimit(limit)

	if n := filter.Near; n != nil {
		query["location"] = bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{n.Longitude, n.Latitude},
				},
				"$maxDistance": n.MaxDistance,
			},
		}
	} else {
		opts.SetSort(bson.M{"created_at": -1})
	}

	return m.findRequests(ctx, query, opts)
}

// ListRequestsByRequester returns every request the user created, newest first
func (m *mongoDB) ListRequestsByRequester(ctx context.Context, requesterID string) ([]schema.Request, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return m.findRequests(ctx,
		bson.M{"requester_id": requesterID},
		options.Find().SetSort(bson.M{"created_at": -1}))
}

// ListRequestsByVolunteer returns requests the user currently holds or completed
func (m *mongoDB) ListRequestsByVolunteer(ctx context.Context, volunteerID string) ([]schema.Request, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return m.findRequests(ctx,
		bson.M{
			"volunteer_id": volunteerID,
			"status":       bson.M{"$in": []schema.RequestStatus{schema.RequestAccepted, schema.RequestCompleted}},
		},
		options.Find().SetSort(bson.M{"accepted_at": -1}))
}

func (m *mongoDB) findRequests(ctx context.Context, query bson.M, opts *options.FindOptions) ([]schema.Request, error) {
	cursor, err := m.collection(schema.RequestCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	requests := make([]schema.Request, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// AcceptRequest claims an open request for a volunteer. The status check and
// the write are one operation, so of two concurrent callers only one matches.
func (m *mongoDB) AcceptRequest(ctx context.Context, id primitive.ObjectID, volunteerID string, at time.Time) (*schema.Request, error) {
	query := bson.M{
		"_id":          id,
		"status":       schema.RequestOpen,
		"is_active":    true,
		"requester_id": bson.M{"$ne": volunteerID},
	}
	update := bson.M{
		"$set": bson.M{
			"status":       schema.RequestAccepted,
			"volunteer_id": volunteerID,
			"accepted_at":  at,
			"updated_at":   at,
		},
	}
	return m.transition(ctx, query, update, options.After)
}

// MarkRequestComplete records that the current volunteer finished the work.
// The status stays accepted until the requester confirms.
func (m *mongoDB) MarkRequestComplete(ctx context.Context, id primitive.ObjectID, volunteerID string, at time.Time) (*schema.Request, error) {
	query := bson.M{
		"_id":          id,
		"status":       schema.RequestAccepted,
		"volunteer_id": volunteerID,
	}
	update := bson.M{
		"$set": bson.M{
			"marked_complete_at": at,
			"updated_at":         at,
		},
	}
	return m.transition(ctx, query, update, options.After)
}

// ConfirmRequestComplete moves a request marked complete to completed
func (m *mongoDB) ConfirmRequestComplete(ctx context.Context, id primitive.ObjectID, requesterID string, at time.Time) (*schema.Request, error) {
	query := bson.M{
		"_id":                id,
		"status":             schema.RequestAccepted,
		"requester_id":       requesterID,
		"marked_complete_at": bson.M{"$ne": nil},
	}
	update := bson.M{
		"$set": bson.M{
			"status":       schema.RequestCompleted,
			"completed_at": at,
			"updated_at":   at,
		},
	}
	return m.transition(ctx, query, update, options.After)
}

// CancelRequest soft deletes a request that is not yet completed. The
// returned document is the state before cancellation so callers can reach
// the released volunteer.
func (m *mongoDB) CancelRequest(ctx context.Context, id primitive.ObjectID, requesterID string, at time.Time) (*schema.Request, error) {
	query := bson.M{
		"_id":          id,
		"requester_id": requesterID,
		"status":       bson.M{"$in": []schema.RequestStatus{schema.RequestOpen, schema.RequestAccepted}},
	}
	update := bson.M{
		"$set": bson.M{
			"status":       schema.RequestCancelled,
			"is_active":    false,
			"cancelled_at": at,
			"updated_at":   at,
		},
		"$unset": bson.M{
			"volunteer_id": "",
		},
	}
	return m.transition(ctx, query, update, options.Before)
}

// UpdateRequest applies a requester's partial edit to a request that is not completed
func (m *mongoDB) UpdateRequest(ctx context.Context, id primitive.ObjectID, requesterID string, patch schema.RequestPatch, at time.Time) (*schema.Request, error) {
	set := bson.M{"updated_at": at}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Urgency != nil {
		set["urgency"] = *patch.Urgency
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}

	query := bson.M{
		"_id":          id,
		"requester_id": requesterID,
		"status":       bson.M{"$ne": schema.RequestCompleted},
	}
	return m.transition(ctx, query, bson.M{"$set": set}, options.After)
}

// ClaimAward stamps awarded_at on a completed request that was not awarded
// yet. Only one caller can claim a request.
func (m *mongoDB) ClaimAward(ctx context.Context, id primitive.ObjectID, at time.Time) (*schema.Request, error) {
	query := bson.M{
		"_id":        id,
		"status":     schema.RequestCompleted,
		"awarded_at": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{"awarded_at": at},
	}
	return m.transition(ctx, query, update, options.After)
}

// ReleaseAward removes the claim of an award that could not be applied
func (m *mongoDB) ReleaseAward(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := m.collection(schema.RequestCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$unset": bson.M{"awarded_at": ""}})
	return err
}

// AddAmountReceived increases the received amount of a money request
func (m *mongoDB) AddAmountReceived(ctx context.Context, id primitive.ObjectID, amount float64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := m.collection(schema.RequestCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"amount_received": amount},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (m *mongoDB) transition(ctx context.Context, query, update bson.M, doc options.ReturnDocument) (*schema.Request, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(doc)

	var r schema.Request
	if err := m.collection(schema.RequestCollection).FindOneAndUpdate(ctx, query, update, opts).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotMatched
		}
		return nil, err
	}
	return &r, nil
}
