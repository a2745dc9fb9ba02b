package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/background"
	"github.com/reliefhub/relief-api/external/geoinfo"
	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/notification"
	"github.com/reliefhub/relief-api/presence"
	"github.com/reliefhub/relief-api/schema"
	"github.com/reliefhub/relief-api/score"
	"github.com/reliefhub/relief-api/store"
)

var log = logrus.WithField("prefix", "lifecycle")

// Actor is the authenticated user performing an action. Name is only used
// in notification text.
type Actor struct {
	ID   string
	Name string
}

// Notifier stores and pushes a notification for one user
type Notifier interface {
	Notify(ctx context.Context, userID string, p notification.Payload, requestID *primitive.ObjectID) (*schema.Notification, error)
}

// Awarder credits a volunteer for a completed request
type Awarder interface {
	Award(ctx context.Context, volunteerID string, req *schema.Request) (*score.Award, error)
}

// ChatCloser closes the chat of a request whose volunteer was released
type ChatCloser interface {
	Close(ctx context.Context, requestID primitive.ObjectID) error
}

// Completion is the outcome of a confirmed completion
type Completion struct {
	Request *schema.Request `json:"request"`
	Award   *score.Award    `json:"award,omitempty"`
}

type metrics struct {
	created           tally.Counter
	accepted          tally.Counter
	acceptConflict    tally.Counter
	completed         tally.Counter
	cancelled         tally.Counter
	sideEffectFailure tally.Counter
}

// Engine moves requests through open, accepted, completed and cancelled.
// Every transition is one conditional write on the expected prior state;
// notifications, pushes and jobs follow the write and never undo it.
type Engine struct {
	requests   store.RequestStore
	notifier   Notifier
	reputation Awarder
	chats      ChatCloser
	enqueuer   background.Enqueuer
	pub        presence.Publisher
	geo        geoinfo.GeoInfo

	validate *validator.Validate
	metrics  metrics
	now      func() time.Time
}

// NewEngine creates a lifecycle engine. geo may be nil, in which case
// location labels are kept as provided.
func NewEngine(
	requests store.RequestStore,
	notifier Notifier,
	reputation Awarder,
	chats ChatCloser,
	enqueuer background.Enqueuer,
	pub presence.Publisher,
	geo geoinfo.GeoInfo,
	scope tally.Scope,
) *Engine {
	s := scope.SubScope("request")
	return &Engine{
		requests:   requests,
		notifier:   notifier,
		reputation: reputation,
		chats:      chats,
		enqueuer:   enqueuer,
		pub:        pub,
		geo:        geo,
		validate:   newValidator(),
		metrics: metrics{
			created:           s.Counter("created"),
			accepted:          s.Counter("accepted"),
			acceptConflict:    s.Counter("accept_conflict"),
			completed:         s.Counter("completed"),
			cancelled:         s.Counter("cancelled"),
			sideEffectFailure: s.Counter("side_effect_failure"),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new open request and schedules the new request broadcast
func (e *Engine) Create(ctx context.Context, requester Actor, params CreateParams) (*schema.Request, error) {
	if err := e.validateCreate(&params); err != nil {
		return nil, err
	}

	now := e.now()
	r := &schema.Request{
		RequesterID: requester.ID,
		Type:        params.Type,
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		Urgency:     params.Urgency,
		Quantity:    params.Quantity,
		Items:       params.Items,
		Status:      schema.RequestOpen,
		Location: schema.RequestLocation{
			Type:        "Point",
			Coordinates: params.Location.Coordinates,
			Barangay:    params.Location.Barangay,
			City:        params.Location.City,
		},
		Address:   params.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if r.Category == "" {
		r.Category = string(r.Type)
	}
	if r.Urgency == "" {
		r.Urgency = schema.UrgencyMedium
	}
	if len(r.Items) == 0 {
		r.Items = []string{string(r.Type)}
	}
	if r.Type == schema.RequestTypeMoney {
		r.GCashNumber = params.GCashNumber
		r.AmountNeeded = params.AmountNeeded
	}

	e.fillLabels(&r.Location)

	if err := e.requests.CreateRequest(ctx, r); err != nil {
		return nil, err
	}
	e.metrics.created.Inc(1)

	if err := e.enqueuer.BroadcastNewRequest(ctx, r.ID); err != nil {
		e.sideEffectFailed(err, "enqueue new request broadcast", r.ID)
	}

	return r, nil
}

// fillLabels resolves missing barangay and city labels. Failures leave the
// labels as they are.
func (e *Engine) fillLabels(loc *schema.RequestLocation) {
	if e.geo == nil || (loc.Barangay != "" && loc.City != "") {
		return
	}

	labels, err := geoinfo.Labels(e.geo, schema.Location{
		Latitude:  loc.Latitude(),
		Longitude: loc.Longitude(),
	})
	if err != nil {
		log.WithError(err).Warn("resolve location labels")
		return
	}

	if loc.Barangay == "" {
		loc.Barangay = labels.Barangay
	}
	if loc.City == "" {
		loc.City = labels.City
	}
}

// Accept claims an open request for the volunteer. Of concurrent callers
// exactly one succeeds; the others get a conflict.
func (e *Engine) Accept(ctx context.Context, requestID primitive.ObjectID, volunteer Actor) (*schema.Request, error) {
	r, err := e.requests.AcceptRequest(ctx, requestID, volunteer.ID, e.now())
	if err != nil {
		if errors.Is(err, store.ErrNotMatched) {
			return nil, e.classifyAccept(ctx, requestID, volunteer.ID)
		}
		return nil, err
	}
	e.metrics.accepted.Inc(1)

	e.notify(ctx, r.RequesterID, notification.RequestAccepted{
		VolunteerName: volunteer.Name,
		Title:         r.Title,
	}, r.ID)
	e.publishUpdate(r, r.RequesterID, r.VolunteerID)

	return r, nil
}

func (e *Engine) classifyAccept(ctx context.Context, requestID primitive.ObjectID, volunteerID string) error {
	cur, err := e.current(ctx, requestID)
	if err != nil {
		return err
	}

	switch {
	case cur.RequesterID == volunteerID:
		return fault.New(fault.SelfAccept, "cannot accept your own request")
	case cur.Status == schema.RequestOpen && !cur.IsActive:
		return fault.NotAvailablef("request is not active")
	case cur.Status == schema.RequestOpen, cur.AcceptedAt != nil:
		// another volunteer got there first, whatever happened to the
		// request since
		e.metrics.acceptConflict.Inc(1)
		return fault.Conflictf("request no longer available")
	default:
		return fault.Transition("accept", string(schema.RequestOpen))
	}
}

// MarkComplete records that the volunteer finished the work and asks the
// requester to confirm. Calling it again refreshes the timestamp.
func (e *Engine) MarkComplete(ctx context.Context, requestID primitive.ObjectID, volunteer Actor) (*schema.Request, error) {
	r, err := e.requests.MarkRequestComplete(ctx, requestID, volunteer.ID, e.now())
	if err != nil {
		if !errors.Is(err, store.ErrNotMatched) {
			return nil, err
		}

		cur, err := e.current(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if cur.Status != schema.RequestAccepted {
			return nil, fault.Transition("mark complete", string(schema.RequestAccepted))
		}
		return nil, fault.NotAuthorizedf("only the accepted volunteer can mark this request complete")
	}

	e.notify(ctx, r.RequesterID, notification.RequestCompleted{
		Stage:     notification.StageMarked,
		ActorName: volunteer.Name,
		Title:     r.Title,
	}, r.ID)
	e.publishUpdate(r, r.RequesterID, r.VolunteerID)

	return r, nil
}

// ConfirmComplete completes a request the volunteer marked complete and
// awards the volunteer. Only one caller can win the transition and the award
// claims the request, so the award happens once per request. A failed award
// is handed to a background job that retries it.
func (e *Engine) ConfirmComplete(ctx context.Context, requestID primitive.ObjectID, requester Actor) (*Completion, error) {
	r, err := e.requests.ConfirmRequestComplete(ctx, requestID, requester.ID, e.now())
	if err != nil {
		if !errors.Is(err, store.ErrNotMatched) {
			return nil, err
		}

		cur, err := e.current(ctx, requestID)
		if err != nil {
			return nil, err
		}
		switch {
		case cur.RequesterID != requester.ID:
			return nil, fault.NotAuthorizedf("only the requester can confirm completion")
		case cur.Status != schema.RequestAccepted:
			return nil, fault.Transition("confirm completion", string(schema.RequestAccepted))
		default:
			return nil, fault.Transition("confirm completion", "marked complete by the volunteer")
		}
	}
	e.metrics.completed.Inc(1)

	completion := &Completion{Request: r}
	points := score.PointsFor(r.Urgency)

	award, err := e.reputation.Award(ctx, r.VolunteerID, r)
	switch {
	case err == nil:
		completion.Award = award
		points = award.Points
	case errors.Is(err, score.ErrAlreadyAwarded):
	default:
		// the claim was released, the job applies the award later
		e.sideEffectFailed(err, "award volunteer", r.ID)
		if err := e.enqueuer.AwardCompletion(ctx, r.ID); err != nil {
			e.sideEffectFailed(err, "enqueue award retry", r.ID)
		}
	}

	e.notify(ctx, r.VolunteerID, notification.RequestCompleted{
		Stage:     notification.StageConfirmed,
		ActorName: requester.Name,
		Title:     r.Title,
		Points:    points,
	}, r.ID)

	if err := e.enqueuer.RefreshLeaderboard(ctx); err != nil {
		e.sideEffectFailed(err, "enqueue leaderboard refresh", r.ID)
	}
	e.publishUpdate(r, r.RequesterID, r.VolunteerID)

	return completion, nil
}

// Cancel withdraws a request that is not completed yet and releases its
// volunteer
func (e *Engine) Cancel(ctx context.Context, requestID primitive.ObjectID, requester Actor) (*schema.Request, error) {
	at := e.now()
	before, err := e.requests.CancelRequest(ctx, requestID, requester.ID, at)
	if err != nil {
		if !errors.Is(err, store.ErrNotMatched) {
			return nil, err
		}

		cur, err := e.current(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if cur.RequesterID != requester.ID {
			return nil, fault.NotAuthorizedf("only the requester can cancel this request")
		}
		return nil, fault.Transition("cancel", "open or accepted")
	}
	e.metrics.cancelled.Inc(1)

	released := before.VolunteerID
	r := *before
	r.Status = schema.RequestCancelled
	r.IsActive = false
	r.VolunteerID = ""
	r.CancelledAt = &at
	r.UpdatedAt = at

	if released != "" {
		if err := e.chats.Close(ctx, r.ID); err != nil {
			e.sideEffectFailed(err, "close chat", r.ID)
		}
	}

	e.publishUpdate(&r, r.RequesterID, released)
	return &r, nil
}

// Edit applies a partial update by the requester. The status is unchanged.
func (e *Engine) Edit(ctx context.Context, requestID primitive.ObjectID, requester Actor, patch schema.RequestPatch) (*schema.Request, error) {
	if err := e.validatePatch(&patch); err != nil {
		return nil, err
	}

	r, err := e.requests.UpdateRequest(ctx, requestID, requester.ID, patch, e.now())
	if err != nil {
		if !errors.Is(err, store.ErrNotMatched) {
			return nil, err
		}

		cur, err := e.current(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if cur.RequesterID != requester.ID {
			return nil, fault.NotAuthorizedf("only the requester can edit this request")
		}
		return nil, fault.New(fault.InvalidTransition, "cannot edit a completed request")
	}

	e.publishUpdate(r, r.RequesterID, r.VolunteerID)
	return r, nil
}

// ListOpen returns open requests, newest first or nearest first with a
// near filter
func (e *Engine) ListOpen(ctx context.Context, filter schema.RequestFilter) ([]schema.Request, error) {
	if err := validFilter(filter); err != nil {
		return nil, err
	}
	return e.requests.ListOpenRequests(ctx, filter)
}

func (e *Engine) Get(ctx context.Context, requestID primitive.ObjectID) (*schema.Request, error) {
	return e.current(ctx, requestID)
}

// ListMine returns every request created by the requester
func (e *Engine) ListMine(ctx context.Context, requesterID string) ([]schema.Request, error) {
	return e.requests.ListRequestsByRequester(ctx, requesterID)
}

// ListAccepted returns the requests the volunteer holds or completed
func (e *Engine) ListAccepted(ctx context.Context, volunteerID string) ([]schema.Request, error) {
	return e.requests.ListRequestsByVolunteer(ctx, volunteerID)
}

func (e *Engine) current(ctx context.Context, requestID primitive.ObjectID) (*schema.Request, error) {
	r, err := e.requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrRequestNotFound) {
			return nil, fault.Wrap(fault.NotFound, err, "request not found")
		}
		return nil, err
	}
	return r, nil
}

func (e *Engine) notify(ctx context.Context, userID string, p notification.Payload, requestID primitive.ObjectID) {
	if userID == "" {
		return
	}
	if _, err := e.notifier.Notify(ctx, userID, p, &requestID); err != nil {
		e.sideEffectFailed(err, "notify "+string(p.Kind()), requestID)
	}
}

// publishUpdate pushes the request to the user rooms of the given users
func (e *Engine) publishUpdate(r *schema.Request, userIDs ...string) {
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		e.pub.Publish(presence.UserRoom(id), presence.EventRequestUpdate, r)
	}
}

func (e *Engine) sideEffectFailed(err error, what string, requestID primitive.ObjectID) {
	e.metrics.sideEffectFailure.Inc(1)
	log.WithError(err).WithField("request", requestID.Hex()).Error(what)
}
