package notification

import (
	"fmt"

	"github.com/reliefhub/relief-api/schema"
)

// Payload is the typed content of a notification. Each kind has exactly one
// payload type; the set is closed to this package.
type Payload interface {
	Kind() schema.NotificationKind
	messageID() string
	templateData() map[string]interface{}
}

// NewRequest announces a newly created request to other users
type NewRequest struct {
	RequestType schema.RequestType
	Title       string
	Urgency     schema.Urgency
}

func (NewRequest) Kind() schema.NotificationKind { return schema.NotificationNewRequest }
func (NewRequest) messageID() string { return "notification.new_request" }
func (p NewRequest) templateData() map[string]interface{} {
	return map[string]interface{}{
		"Type":    string(p.RequestType),
		"Title":   p.Title,
		"Urgency": string(p.Urgency),
	}
}

// RequestAccepted tells a requester that a volunteer claimed the request
type RequestAccepted struct {
	VolunteerName string
	Title         string
}

func (RequestAccepted) Kind() schema.NotificationKind { return schema.NotificationRequestAccepted }
func (RequestAccepted) messageID() string { return "notification.request_accepted" }
func (p RequestAccepted) templateData() map[string]interface{} {
	return map[string]interface{}{
		"Volunteer": p.VolunteerName,
		"Title":     p.Title,
	}
}

type Stage string

const (
	StageMarked    Stage = "marked"
	StageConfirmed Stage = "confirmed"
)

// RequestCompleted covers both completion steps. When the volunteer marks
// the work done the requester is asked to confirm. When the requester
// confirms the volunteer learns the points earned.
type RequestCompleted struct {
	Stage     Stage
	ActorName string
	Title     string
	Points    int
}

func (RequestCompleted) Kind() schema.NotificationKind { return schema.NotificationRequestCompleted }
func (p RequestCompleted) messageID() string {
	if p.Stage == StageConfirmed {
		return "notification.request_completed.confirmed"
	}
	return "notification.request_completed.marked"
}
func (p RequestCompleted) templateData() map[string]interface{} {
	return map[string]interface{}{
		"Actor":  p.ActorName,
		"Title":  p.Title,
		"Points": p.Points,
	}
}

// DonationReceived tells a requester about a recorded donation
type DonationReceived struct {
	DonorName string
	Amount    float64
	Title     string
}

func (DonationReceived) Kind() schema.NotificationKind { return schema.NotificationDonationReceived }
func (DonationReceived) messageID() string { return "notification.donation_received" }
func (p DonationReceived) templateData() map[string]interface{} {
	return map[string]interface{}{
		"Donor":  p.DonorName,
		"Amount": fmt.Sprintf("%.2f", p.Amount),
		"Title":  p.Title,
	}
}
