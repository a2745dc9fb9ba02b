package lifecycle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"googlemaps.github.io/maps"

	bgmocks "github.com/reliefhub/relief-api/background/mocks"
	geomocks "github.com/reliefhub/relief-api/external/mocks"
	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/notification"
	"github.com/reliefhub/relief-api/presence"
	"github.com/reliefhub/relief-api/presence/presencetest"
	"github.com/reliefhub/relief-api/schema"
	"github.com/reliefhub/relief-api/score"
	"github.com/reliefhub/relief-api/store"
	"github.com/reliefhub/relief-api/store/mocks"
)

type sent struct {
	userID  string
	payload notification.Payload
}

type fakeNotifier struct {
	sync.Mutex
	sent []sent
}

func (f *fakeNotifier) Notify(_ context.Context, userID string, p notification.Payload, _ *primitive.ObjectID) (*schema.Notification, error) {
	f.Lock()
	defer f.Unlock()
	f.sent = append(f.sent, sent{userID, p})
	return &schema.Notification{UserID: userID, Kind: p.Kind()}, nil
}

func (f *fakeNotifier) all() []sent {
	f.Lock()
	defer f.Unlock()
	return append([]sent{}, f.sent...)
}

type fakeAwarder struct {
	sync.Mutex
	awarded []string
	err     error
}

func (f *fakeAwarder) Award(_ context.Context, volunteerID string, req *schema.Request) (*score.Award, error) {
	f.Lock()
	defer f.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.awarded = append(f.awarded, volunteerID)
	return &score.Award{Points: score.PointsFor(req.Urgency), Badges: []string{}}, nil
}

type fakeChats struct {
	sync.Mutex
	closed []primitive.ObjectID
	err    error
}

func (f *fakeChats) Close(_ context.Context, requestID primitive.ObjectID) error {
	f.Lock()
	defer f.Unlock()
	f.closed = append(f.closed, requestID)
	return f.err
}

var (
	requester = Actor{ID: "requester", Name: "Rosa"}
	volunteer = Actor{ID: "volunteer", Name: "Val"}
	other     = Actor{ID: "other", Name: "Olan"}
)

type EngineTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	requests *mocks.MockRequestStore
	enqueuer *bgmocks.MockEnqueuer
	geo      *geomocks.MockGeoInfo
	notifier *fakeNotifier
	awarder  *fakeAwarder
	chats    *fakeChats
	recorder *presencetest.Recorder
	scope    tally.TestScope
	engine   *Engine
	now      time.Time
}

func (s *EngineTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.requests = mocks.NewMockRequestStore(s.ctrl)
	s.enqueuer = bgmocks.NewMockEnqueuer(s.ctrl)
	s.geo = geomocks.NewMockGeoInfo(s.ctrl)
	s.notifier = &fakeNotifier{}
	s.awarder = &fakeAwarder{}
	s.chats = &fakeChats{}
	s.recorder = &presencetest.Recorder{}
	s.scope = tally.NewTestScope("", nil)
	s.engine = NewEngine(s.requests, s.notifier, s.awarder, s.chats, s.enqueuer, s.recorder, nil, s.scope)

	s.now = time.Date(2024, 11, 2, 8, 0, 0, 0, time.UTC)
	s.engine.now = func() time.Time { return s.now }
}

func (s *EngineTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EngineTestSuite) counter(name string) int64 {
	for _, c := range s.scope.Snapshot().Counters() {
		if c.Name() == name {
			return c.Value()
		}
	}
	return 0
}

func (s *EngineTestSuite) createParams() CreateParams {
	return CreateParams{
		Type:        schema.RequestTypeFood,
		Title:       " Rice for 5 families ",
		Description: "Flooded since Tuesday",
		Location: LocationParams{
			Coordinates: []float64{121.0437, 14.6760},
			Barangay:    "Bagong Silangan",
			City:        "Quezon City",
		},
	}
}

func (s *EngineTestSuite) openRequest() *schema.Request {
	return &schema.Request{
		ID:          primitive.NewObjectID(),
		RequesterID: requester.ID,
		Type:        schema.RequestTypeWater,
		Title:       "Water",
		Urgency:     schema.UrgencyCritical,
		Status:      schema.RequestOpen,
		IsActive:    true,
	}
}

func (s *EngineTestSuite) TestCreateDefaults() {
	ctx := context.Background()
	s.requests.EXPECT().CreateRequest(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *schema.Request) error {
			r.ID = primitive.NewObjectID()
			return nil
		})
	s.enqueuer.EXPECT().BroadcastNewRequest(ctx, gomock.Any()).Return(nil)

	r, err := s.engine.Create(ctx, requester, s.createParams())
	s.NoError(err)
	s.Equal(schema.RequestOpen, r.Status)
	s.Equal("Rice for 5 families", r.Title)
	s.Equal(schema.UrgencyMedium, r.Urgency)
	s.Equal("food", r.Category)
	s.Equal([]string{"food"}, r.Items)
	s.Equal("Point", r.Location.Type)
	s.Equal(requester.ID, r.RequesterID)
	s.Empty(r.VolunteerID)
	s.True(r.IsActive)
	s.Equal(int64(1), s.counter("request.created"))
}

func (s *EngineTestSuite) TestCreateIgnoresMoneyFieldsForGoods() {
	ctx := context.Background()
	p := s.createParams()
	p.GCashNumber = "09171234567"
	p.AmountNeeded = 500

	s.requests.EXPECT().CreateRequest(ctx, gomock.Any()).Return(nil)
	s.enqueuer.EXPECT().BroadcastNewRequest(ctx, gomock.Any()).Return(nil)

	r, err := s.engine.Create(ctx, requester, p)
	s.NoError(err)
	s.Empty(r.GCashNumber)
	s.Zero(r.AmountNeeded)
}

func (s *EngineTestSuite) TestCreateEnqueueFailureIsNotReturned() {
	ctx := context.Background()
	s.requests.EXPECT().CreateRequest(ctx, gomock.Any()).Return(nil)
	s.enqueuer.EXPECT().BroadcastNewRequest(ctx, gomock.Any()).Return(assert.AnError)

	r, err := s.engine.Create(ctx, requester, s.createParams())
	s.NoError(err)
	s.NotNil(r)
	s.Equal(int64(1), s.counter("request.side_effect_failure"))
}

func (s *EngineTestSuite) TestCreateValidation() {
	cases := map[string]func(p *CreateParams){
		"missing type":        func(p *CreateParams) { p.Type = "" },
		"unknown type":        func(p *CreateParams) { p.Type = "toys" },
		"blank title":         func(p *CreateParams) { p.Title = "   " },
		"missing description": func(p *CreateParams) { p.Description = "" },
		"no coordinates":      func(p *CreateParams) { p.Location.Coordinates = nil },
		"one coordinate":      func(p *CreateParams) { p.Location.Coordinates = []float64{121} },
		"longitude range":     func(p *CreateParams) { p.Location.Coordinates = []float64{190, 14} },
		"latitude range":      func(p *CreateParams) { p.Location.Coordinates = []float64{121, -91} },
		"unknown urgency":     func(p *CreateParams) { p.Urgency = "extreme" },
		"negative amount":     func(p *CreateParams) { p.Type = schema.RequestTypeMoney; p.AmountNeeded = -1 },
	}

	for name, mutate := range cases {
		p := s.createParams()
		mutate(&p)
		_, err := s.engine.Create(context.Background(), requester, p)
		s.True(fault.Is(err, fault.Validation), name)
	}
	s.Zero(s.counter("request.created"))
}

func (s *EngineTestSuite) TestCreateFillsMissingLabels() {
	ctx := context.Background()
	s.engine.geo = s.geo

	p := s.createParams()
	p.Location.Barangay = ""
	p.Location.City = ""

	s.geo.EXPECT().Get(schema.Location{Latitude: 14.6760, Longitude: 121.0437}).Return([]maps.GeocodingResult{
		{AddressComponents: []maps.AddressComponent{
			{LongName: "Bagong Silangan", Types: []string{"sublocality_level_1"}},
			{LongName: "Quezon City", Types: []string{"locality"}},
		}},
	}, nil)
	s.requests.EXPECT().CreateRequest(ctx, gomock.Any()).Return(nil)
	s.enqueuer.EXPECT().BroadcastNewRequest(ctx, gomock.Any()).Return(nil)

	r, err := s.engine.Create(ctx, requester, p)
	s.NoError(err)
	s.Equal("Bagong Silangan", r.Location.Barangay)
	s.Equal("Quezon City", r.Location.City)
}

func (s *EngineTestSuite) TestCreateGeocodeFailureKeepsLabels() {
	ctx := context.Background()
	s.engine.geo = s.geo

	p := s.createParams()
	p.Location.City = ""

	s.geo.EXPECT().Get(gomock.Any()).Return(nil, assert.AnError)
	s.requests.EXPECT().CreateRequest(ctx, gomock.Any()).Return(nil)
	s.enqueuer.EXPECT().BroadcastNewRequest(ctx, gomock.Any()).Return(nil)

	r, err := s.engine.Create(ctx, requester, p)
	s.NoError(err)
	s.Equal("Bagong Silangan", r.Location.Barangay)
	s.Empty(r.Location.City)
}

func (s *EngineTestSuite) TestAccept() {
	ctx := context.Background()
	r := s.openRequest()
	accepted := *r
	accepted.Status = schema.RequestAccepted
	accepted.VolunteerID = volunteer.ID
	accepted.AcceptedAt = &s.now

	s.requests.EXPECT().AcceptRequest(ctx, r.ID, volunteer.ID, s.now).Return(&accepted, nil)

	got, err := s.engine.Accept(ctx, r.ID, volunteer)
	s.NoError(err)
	s.Equal(volunteer.ID, got.VolunteerID)

	notes := s.notifier.all()
	s.Len(notes, 1)
	s.Equal(requester.ID, notes[0].userID)
	s.Equal(notification.RequestAccepted{VolunteerName: "Val", Title: "Water"}, notes[0].payload)

	s.Len(s.recorder.Find(presence.UserRoom(requester.ID), presence.EventRequestUpdate), 1)
	s.Len(s.recorder.Find(presence.UserRoom(volunteer.ID), presence.EventRequestUpdate), 1)
	s.Equal(int64(1), s.counter("request.accepted"))
}

func (s *EngineTestSuite) TestAcceptOwnRequest() {
	ctx := context.Background()
	r := s.openRequest()

	s.requests.EXPECT().AcceptRequest(ctx, r.ID, requester.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.Accept(ctx, r.ID, requester)
	s.True(fault.Is(err, fault.SelfAccept))
	s.Empty(s.notifier.all())
}

func (s *EngineTestSuite) TestAcceptAlreadyClaimed() {
	ctx := context.Background()
	r := s.openRequest()
	r.Status = schema.RequestAccepted
	r.VolunteerID = volunteer.ID

	s.requests.EXPECT().AcceptRequest(ctx, r.ID, other.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.Accept(ctx, r.ID, other)
	s.True(fault.Is(err, fault.Conflict))
	s.Equal("request no longer available", fault.Message(err))
	s.Equal(int64(1), s.counter("request.accept_conflict"))
}

func (s *EngineTestSuite) TestAcceptTerminal() {
	ctx := context.Background()
	for _, status := range []schema.RequestStatus{schema.RequestCompleted, schema.RequestCancelled} {
		r := s.openRequest()
		r.Status = status

		s.requests.EXPECT().AcceptRequest(ctx, r.ID, volunteer.ID, s.now).Return(nil, store.ErrNotMatched)
		s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

		_, err := s.engine.Accept(ctx, r.ID, volunteer)
		s.True(fault.Is(err, fault.InvalidTransition), string(status))
		s.Equal("cannot accept: request must be open", fault.Message(err))
	}
}

func (s *EngineTestSuite) TestAcceptLostToVolunteerWhoCancelled() {
	ctx := context.Background()
	r := s.openRequest()
	r.Status = schema.RequestCancelled
	r.IsActive = false
	r.AcceptedAt = &s.now

	s.requests.EXPECT().AcceptRequest(ctx, r.ID, other.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.Accept(ctx, r.ID, other)
	s.True(fault.Is(err, fault.Conflict))
	s.Equal(int64(1), s.counter("request.accept_conflict"))
}

func (s *EngineTestSuite) TestAcceptLostButStillOpen() {
	ctx := context.Background()
	r := s.openRequest()

	s.requests.EXPECT().AcceptRequest(ctx, r.ID, other.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.Accept(ctx, r.ID, other)
	s.True(fault.Is(err, fault.Conflict))
}

func (s *EngineTestSuite) TestAcceptUnknown() {
	ctx := context.Background()
	id := primitive.NewObjectID()

	s.requests.EXPECT().AcceptRequest(ctx, id, volunteer.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, id).Return(nil, store.ErrRequestNotFound)

	_, err := s.engine.Accept(ctx, id, volunteer)
	s.True(fault.Is(err, fault.NotFound))
}

func (s *EngineTestSuite) TestConcurrentAcceptHasOneWinner() {
	r := s.openRequest()

	var mu sync.Mutex
	current := *r

	s.requests.EXPECT().AcceptRequest(gomock.Any(), r.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ primitive.ObjectID, volunteerID string, at time.Time) (*schema.Request, error) {
			mu.Lock()
			defer mu.Unlock()
			if current.Status != schema.RequestOpen {
				return nil, store.ErrNotMatched
			}
			current.Status = schema.RequestAccepted
			current.VolunteerID = volunteerID
			current.AcceptedAt = &at
			accepted := current
			return &accepted, nil
		}).AnyTimes()
	s.requests.EXPECT().GetRequest(gomock.Any(), r.ID).
		DoAndReturn(func(context.Context, primitive.ObjectID) (*schema.Request, error) {
			mu.Lock()
			defer mu.Unlock()
			cur := current
			return &cur, nil
		}).AnyTimes()

	const volunteers = 20
	errs := make([]error, volunteers)

	var wg sync.WaitGroup
	for i := 0; i < volunteers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.engine.Accept(context.Background(), r.ID, Actor{ID: primitive.NewObjectID().Hex()})
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case fault.Is(err, fault.Conflict):
			conflicts++
		}
	}
	s.Equal(1, wins)
	s.Equal(volunteers-1, conflicts)
	s.Len(s.notifier.all(), 1)
}

func (s *EngineTestSuite) acceptedRequest() *schema.Request {
	r := s.openRequest()
	r.Status = schema.RequestAccepted
	r.VolunteerID = volunteer.ID
	r.AcceptedAt = &s.now
	return r
}

func (s *EngineTestSuite) TestMarkComplete() {
	ctx := context.Background()
	r := s.acceptedRequest()
	marked := *r
	marked.MarkedCompleteAt = &s.now

	s.requests.EXPECT().MarkRequestComplete(ctx, r.ID, volunteer.ID, s.now).Return(&marked, nil)

	got, err := s.engine.MarkComplete(ctx, r.ID, volunteer)
	s.NoError(err)
	s.Equal(schema.RequestAccepted, got.Status)
	s.True(got.AwaitingConfirmation())

	notes := s.notifier.all()
	s.Len(notes, 1)
	s.Equal(requester.ID, notes[0].userID)
	s.Equal(notification.StageMarked, notes[0].payload.(notification.RequestCompleted).Stage)
}

func (s *EngineTestSuite) TestMarkCompleteByOtherUser() {
	ctx := context.Background()
	r := s.acceptedRequest()

	s.requests.EXPECT().MarkRequestComplete(ctx, r.ID, other.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.MarkComplete(ctx, r.ID, other)
	s.True(fault.Is(err, fault.NotAuthorized))
}

func (s *EngineTestSuite) TestMarkCompleteOpenRequest() {
	ctx := context.Background()
	r := s.openRequest()

	s.requests.EXPECT().MarkRequestComplete(ctx, r.ID, volunteer.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.MarkComplete(ctx, r.ID, volunteer)
	s.True(fault.Is(err, fault.InvalidTransition))
	s.Equal("cannot mark complete: request must be accepted", fault.Message(err))
}

func (s *EngineTestSuite) TestConfirmBeforeMarkComplete() {
	ctx := context.Background()
	r := s.acceptedRequest()

	s.requests.EXPECT().ConfirmRequestComplete(ctx, r.ID, requester.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.ConfirmComplete(ctx, r.ID, requester)
	s.True(fault.Is(err, fault.InvalidTransition))
	s.Empty(s.awarder.awarded)
}

func (s *EngineTestSuite) TestConfirmByVolunteer() {
	ctx := context.Background()
	r := s.acceptedRequest()
	r.MarkedCompleteAt = &s.now

	s.requests.EXPECT().ConfirmRequestComplete(ctx, r.ID, volunteer.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.ConfirmComplete(ctx, r.ID, volunteer)
	s.True(fault.Is(err, fault.NotAuthorized))
}

func (s *EngineTestSuite) TestConfirmAwardsOnce() {
	ctx := context.Background()
	r := s.acceptedRequest()
	r.MarkedCompleteAt = &s.now
	completed := *r
	completed.Status = schema.RequestCompleted
	completed.CompletedAt = &s.now

	gomock.InOrder(
		s.requests.EXPECT().ConfirmRequestComplete(ctx, r.ID, requester.ID, s.now).Return(&completed, nil),
		s.requests.EXPECT().ConfirmRequestComplete(ctx, r.ID, requester.ID, s.now).Return(nil, store.ErrNotMatched),
	)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(&completed, nil)
	s.enqueuer.EXPECT().RefreshLeaderboard(ctx).Return(nil)

	c, err := s.engine.ConfirmComplete(ctx, r.ID, requester)
	s.NoError(err)
	s.Equal(schema.RequestCompleted, c.Request.Status)
	s.Equal(25, c.Award.Points)

	_, err = s.engine.ConfirmComplete(ctx, r.ID, requester)
	s.True(fault.Is(err, fault.InvalidTransition))

	s.Equal([]string{volunteer.ID}, s.awarder.awarded)
	s.Equal(int64(1), s.counter("request.completed"))

	notes := s.notifier.all()
	s.Len(notes, 1)
	s.Equal(volunteer.ID, notes[0].userID)
	s.Equal(notification.RequestCompleted{
		Stage:     notification.StageConfirmed,
		ActorName: "Rosa",
		Title:     "Water",
		Points:    25,
	}, notes[0].payload)
}

func (s *EngineTestSuite) TestConfirmAwardFailureStillCompletes() {
	ctx := context.Background()
	r := s.acceptedRequest()
	r.Status = schema.RequestCompleted
	s.awarder.err = assert.AnError

	s.requests.EXPECT().ConfirmRequestComplete(ctx, r.ID, requester.ID, s.now).Return(r, nil)
	s.enqueuer.EXPECT().AwardCompletion(ctx, r.ID).Return(nil)
	s.enqueuer.EXPECT().RefreshLeaderboard(ctx).Return(nil)

	c, err := s.engine.ConfirmComplete(ctx, r.ID, requester)
	s.NoError(err)
	s.Equal(schema.RequestCompleted, c.Request.Status)
	s.Nil(c.Award)
	s.Equal(int64(1), s.counter("request.side_effect_failure"))
}

func (s *EngineTestSuite) TestConfirmAwardRetriedUntilApplied() {
	ctx := context.Background()
	r := s.acceptedRequest()
	r.Status = schema.RequestCompleted
	s.awarder.err = assert.AnError

	// the scheduled job awards once the store recovers
	s.requests.EXPECT().ConfirmRequestComplete(ctx, r.ID, requester.ID, s.now).Return(r, nil)
	s.enqueuer.EXPECT().AwardCompletion(ctx, r.ID).
		DoAndReturn(func(ctx context.Context, id primitive.ObjectID) error {
			s.awarder.Lock()
			s.awarder.err = nil
			s.awarder.Unlock()
			_, err := s.awarder.Award(ctx, r.VolunteerID, r)
			return err
		})
	s.enqueuer.EXPECT().RefreshLeaderboard(ctx).Return(nil)

	_, err := s.engine.ConfirmComplete(ctx, r.ID, requester)
	s.NoError(err)
	s.Equal([]string{volunteer.ID}, s.awarder.awarded)
}

func (s *EngineTestSuite) TestConfirmAlreadyAwardedIsNotRetried() {
	ctx := context.Background()
	r := s.acceptedRequest()
	r.Status = schema.RequestCompleted
	s.awarder.err = score.ErrAlreadyAwarded

	s.requests.EXPECT().ConfirmRequestComplete(ctx, r.ID, requester.ID, s.now).Return(r, nil)
	s.enqueuer.EXPECT().RefreshLeaderboard(ctx).Return(nil)

	_, err := s.engine.ConfirmComplete(ctx, r.ID, requester)
	s.NoError(err)
	s.Equal(int64(0), s.counter("request.side_effect_failure"))
}

func (s *EngineTestSuite) TestCancelAcceptedReleasesVolunteer() {
	ctx := context.Background()
	before := s.acceptedRequest()

	s.requests.EXPECT().CancelRequest(ctx, before.ID, requester.ID, s.now).Return(before, nil)

	r, err := s.engine.Cancel(ctx, before.ID, requester)
	s.NoError(err)
	s.Equal(schema.RequestCancelled, r.Status)
	s.False(r.IsActive)
	s.Empty(r.VolunteerID)
	s.Equal(&s.now, r.CancelledAt)

	events := s.recorder.Find(presence.UserRoom(volunteer.ID), presence.EventRequestUpdate)
	s.Len(events, 1)
	s.Equal(schema.RequestCancelled, events[0].Data.(*schema.Request).Status)
	s.Equal(int64(1), s.counter("request.cancelled"))
	s.Equal([]primitive.ObjectID{before.ID}, s.chats.closed)
}

func (s *EngineTestSuite) TestCancelOpenHasNoChatToClose() {
	ctx := context.Background()
	before := s.openRequest()

	s.requests.EXPECT().CancelRequest(ctx, before.ID, requester.ID, s.now).Return(before, nil)

	_, err := s.engine.Cancel(ctx, before.ID, requester)
	s.NoError(err)
	s.Empty(s.chats.closed)
}

func (s *EngineTestSuite) TestCancelChatCloseFailureStillCancels() {
	ctx := context.Background()
	before := s.acceptedRequest()
	s.chats.err = assert.AnError

	s.requests.EXPECT().CancelRequest(ctx, before.ID, requester.ID, s.now).Return(before, nil)

	r, err := s.engine.Cancel(ctx, before.ID, requester)
	s.NoError(err)
	s.Equal(schema.RequestCancelled, r.Status)
	s.Equal(int64(1), s.counter("request.side_effect_failure"))
}

func (s *EngineTestSuite) TestCancelCompleted() {
	ctx := context.Background()
	r := s.acceptedRequest()
	r.Status = schema.RequestCompleted

	s.requests.EXPECT().CancelRequest(ctx, r.ID, requester.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.Cancel(ctx, r.ID, requester)
	s.True(fault.Is(err, fault.InvalidTransition))
}

func (s *EngineTestSuite) TestCancelByOtherUser() {
	ctx := context.Background()
	r := s.openRequest()

	s.requests.EXPECT().CancelRequest(ctx, r.ID, other.ID, s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.Cancel(ctx, r.ID, other)
	s.True(fault.Is(err, fault.NotAuthorized))
}

func (s *EngineTestSuite) TestEdit() {
	ctx := context.Background()
	r := s.openRequest()
	title := "  Drinking water  "
	urgency := schema.UrgencyHigh

	s.requests.EXPECT().UpdateRequest(ctx, r.ID, requester.ID, gomock.Any(), s.now).
		DoAndReturn(func(_ context.Context, _ primitive.ObjectID, _ string, patch schema.RequestPatch, _ time.Time) (*schema.Request, error) {
			s.Equal("Drinking water", *patch.Title)
			s.Nil(patch.Description)
			edited := *r
			edited.Title = *patch.Title
			edited.Urgency = *patch.Urgency
			return &edited, nil
		})

	got, err := s.engine.Edit(ctx, r.ID, requester, schema.RequestPatch{Title: &title, Urgency: &urgency})
	s.NoError(err)
	s.Equal("Drinking water", got.Title)
	s.Equal(schema.RequestOpen, got.Status)
}

func (s *EngineTestSuite) TestEditValidation() {
	blank := "   "
	bad := schema.Urgency("extreme")

	_, err := s.engine.Edit(context.Background(), primitive.NewObjectID(), requester, schema.RequestPatch{})
	s.True(fault.Is(err, fault.Validation))

	_, err = s.engine.Edit(context.Background(), primitive.NewObjectID(), requester, schema.RequestPatch{Title: &blank})
	s.True(fault.Is(err, fault.Validation))

	_, err = s.engine.Edit(context.Background(), primitive.NewObjectID(), requester, schema.RequestPatch{Urgency: &bad})
	s.True(fault.Is(err, fault.Validation))
}

func (s *EngineTestSuite) TestEditCompleted() {
	ctx := context.Background()
	r := s.acceptedRequest()
	r.Status = schema.RequestCompleted
	title := "New title"

	s.requests.EXPECT().UpdateRequest(ctx, r.ID, requester.ID, gomock.Any(), s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.Edit(ctx, r.ID, requester, schema.RequestPatch{Title: &title})
	s.True(fault.Is(err, fault.InvalidTransition))
}

func (s *EngineTestSuite) TestEditByOtherUser() {
	ctx := context.Background()
	r := s.openRequest()
	title := "Mine now"

	s.requests.EXPECT().UpdateRequest(ctx, r.ID, other.ID, gomock.Any(), s.now).Return(nil, store.ErrNotMatched)
	s.requests.EXPECT().GetRequest(ctx, r.ID).Return(r, nil)

	_, err := s.engine.Edit(ctx, r.ID, other, schema.RequestPatch{Title: &title})
	s.True(fault.Is(err, fault.NotAuthorized))
}

func (s *EngineTestSuite) TestListOpenFilterValidation() {
	_, err := s.engine.ListOpen(context.Background(), schema.RequestFilter{Type: "toys"})
	s.True(fault.Is(err, fault.Validation))

	_, err = s.engine.ListOpen(context.Background(), schema.RequestFilter{
		Near: &schema.NearFilter{Longitude: 121, Latitude: 95, MaxDistance: 1000},
	})
	s.True(fault.Is(err, fault.Validation))
}

func (s *EngineTestSuite) TestListOpen() {
	ctx := context.Background()
	filter := schema.RequestFilter{Urgency: schema.UrgencyCritical}
	s.requests.EXPECT().ListOpenRequests(ctx, filter).Return([]schema.Request{*s.openRequest()}, nil)

	requests, err := s.engine.ListOpen(ctx, filter)
	s.NoError(err)
	s.Len(requests, 1)
}

func (s *EngineTestSuite) TestGetUnknown() {
	ctx := context.Background()
	id := primitive.NewObjectID()
	s.requests.EXPECT().GetRequest(ctx, id).Return(nil, store.ErrRequestNotFound)

	_, err := s.engine.Get(ctx, id)
	s.True(fault.Is(err, fault.NotFound))
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
