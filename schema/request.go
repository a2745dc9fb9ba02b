package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestCollection = "request"
)

type RequestType string

const (
	RequestTypeFood     RequestType = "food"
	RequestTypeWater    RequestType = "water"
	RequestTypeShelter  RequestType = "shelter"
	RequestTypeClothing RequestType = "clothing"
	RequestTypeMedical  RequestType = "medical"
	RequestTypeMoney    RequestType = "money"
	RequestTypeOther    RequestType = "other"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

type RequestStatus string

const (
	RequestOpen      RequestStatus = "open"
	RequestAccepted  RequestStatus = "accepted"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

// Terminal reports whether no transition may leave the status
func (s RequestStatus) Terminal() bool {
	return s == RequestCompleted || s == RequestCancelled
}

// RequestLocation is a GeoJSON point with the human readable labels shown
// to volunteers
type RequestLocation struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
	Barangay    string    `json:"barangay,omitempty" bson:"barangay,omitempty"`
	City        string    `json:"city,omitempty" bson:"city,omitempty"`
}

// Longitude returns the first coordinate of the point
func (l RequestLocation) Longitude() float64 {
	if len(l.Coordinates) != 2 {
		return 0
	}
	return l.Coordinates[0]
}

// Latitude returns the second coordinate of the point
func (l RequestLocation) Latitude() float64 {
	if len(l.Coordinates) != 2 {
		return 0
	}
	return l.Coordinates[1]
}

// Request is a single relief ask
type Request struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RequesterID      string             `json:"requester_id" bson:"requester_id"`
	VolunteerID      string             `json:"volunteer_id,omitempty" bson:"volunteer_id,omitempty"`
	Type             RequestType        `json:"type" bson:"type"`
	Title            string             `json:"title" bson:"title"`
	Description      string             `json:"description" bson:"description"`
	Category         string             `json:"category" bson:"category"`
	Urgency          Urgency            `json:"urgency" bson:"urgency"`
	Quantity         string             `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Items            []string           `json:"items" bson:"items"`
	Status           RequestStatus      `json:"status" bson:"status"`
	Location         RequestLocation    `json:"location" bson:"location"`
	Address          string             `json:"address,omitempty" bson:"address,omitempty"`
	GCashNumber      string             `json:"gcash_number,omitempty" bson:"gcash_number,omitempty"`
	AmountNeeded     float64            `json:"amount_needed,omitempty" bson:"amount_needed,omitempty"`
	AmountReceived   float64            `json:"amount_received" bson:"amount_received"`
	IsActive         bool               `json:"is_active" bson:"is_active"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
	AcceptedAt       *time.Time         `json:"accepted_at,omitempty" bson:"accepted_at,omitempty"`
	MarkedCompleteAt *time.Time         `json:"marked_complete_at,omitempty" bson:"marked_complete_at,omitempty"`
	CompletedAt      *time.Time         `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CancelledAt      *time.Time         `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	AwardedAt        *time.Time         `json:"awarded_at,omitempty" bson:"awarded_at,omitempty"`
}

// AwaitingConfirmation is true once the volunteer marked the work done and
// the requester has not confirmed yet
func (r *Request) AwaitingConfirmation() bool {
	return r.Status == RequestAccepted && r.MarkedCompleteAt != nil
}

// IsParticipant reports whether the user is the requester or the current volunteer
func (r *Request) IsParticipant(userID string) bool {
	return userID != "" && (r.RequesterID == userID || r.VolunteerID == userID)
}

// RequestPatch is a partial edit made by the requester. Nil fields are kept.
type RequestPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Urgency     *Urgency `json:"urgency"`
	Quantity    *string  `json:"quantity"`
}

// Empty reports whether the patch changes nothing
func (p RequestPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Urgency == nil && p.Quantity == nil
}

// NearFilter narrows a listing to requests within MaxDistance meters
type NearFilter struct {
	Longitude   float64
	Latitude    float64
	MaxDistance int
}

// RequestFilter is the query for open request listings
type RequestFilter struct {
	Type    RequestType
	Urgency Urgency
	Near    *NearFilter
	Limit   int64
}
