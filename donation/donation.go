package donation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/notification"
	"github.com/reliefhub/relief-api/schema"
	"github.com/reliefhub/relief-api/store"
)

var log = logrus.WithField("prefix", "donation")

// Split returns the platform fee and the net amount of a donation, both
// rounded to cents
func Split(amount, feePercent float64) (fee, net float64) {
	fee = cents(amount * feePercent / 100)
	net = cents(amount - fee)
	return fee, net
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Notifier stores and pushes a notification for one user
type Notifier interface {
	Notify(ctx context.Context, userID string, p notification.Payload, requestID *primitive.ObjectID) (*schema.Notification, error)
}

// Donor is the user recording a donation
type Donor struct {
	ID   string
	Name string
}

type RecordParams struct {
	RequestID string  `json:"request_id"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"gcash_reference"`
	Notes     string  `json:"notes"`
}

// Service records GCash donations made outside the platform. References are
// trusted as given.
type Service struct {
	ledger   store.DonationLedger
	requests store.RequestStore
	users    store.UserStore
	notifier Notifier

	feePercent float64
	minimum    float64
	now        func() time.Time
}

func NewService(ledger store.DonationLedger, requests store.RequestStore, users store.UserStore, notifier Notifier, feePercent, minimum float64) *Service {
	return &Service{
		ledger:     ledger,
		requests:   requests,
		users:      users,
		notifier:   notifier,
		feePercent: feePercent,
		minimum:    minimum,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Record stores a donation to a money request and credits both sides
func (s *Service) Record(ctx context.Context, donor Donor, params RecordParams) (*schema.Donation, error) {
	params.Reference = strings.TrimSpace(params.Reference)
	params.Notes = strings.TrimSpace(params.Notes)

	if math.IsNaN(params.Amount) || params.Amount < s.minimum {
		return nil, fault.Validationf("minimum donation is %.2f", s.minimum)
	}
	if params.Reference == "" {
		return nil, fault.Validationf("gcash reference is required")
	}

	requestID, err := primitive.ObjectIDFromHex(params.RequestID)
	if err != nil {
		return nil, fault.Validationf("invalid request id")
	}

	req, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrRequestNotFound) {
			return nil, fault.Wrap(fault.NotFound, err, "request not found")
		}
		return nil, err
	}
	if req.Type != schema.RequestTypeMoney {
		return nil, fault.NotFoundf("money request not found")
	}

	fee, net := Split(params.Amount, s.feePercent)
	d := &schema.Donation{
		ID:             uuid.New(),
		DonorID:        donor.ID,
		RequestID:      requestID.Hex(),
		Amount:         params.Amount,
		PlatformFee:    fee,
		NetAmount:      net,
		GCashReference: params.Reference,
		Status:         schema.DONATION_COMPLETED,
		Notes:          params.Notes,
		CreatedAt:      s.now(),
	}

	if err := s.ledger.RecordDonation(d); err != nil {
		if errors.Is(err, store.ErrDuplicateReference) {
			return nil, fault.Wrap(fault.Conflict, err, "gcash reference already recorded")
		}
		return nil, fmt.Errorf("record donation: %w", err)
	}

	if err := s.requests.AddAmountReceived(ctx, requestID, net); err != nil {
		log.WithError(err).WithField("donation", d.ID).Error("add amount received")
	}
	if err := s.users.AddDonated(ctx, donor.ID, d.Amount); err != nil {
		log.WithError(err).WithField("donation", d.ID).Error("add donated amount")
	}
	if _, err := s.notifier.Notify(ctx, req.RequesterID, notification.DonationReceived{
		DonorName: donor.Name,
		Amount:    d.Amount,
		Title:     req.Title,
	}, &requestID); err != nil {
		log.WithError(err).WithField("donation", d.ID).Error("notify donation received")
	}

	return d, nil
}

// ListByDonor returns the donations made by a user
func (s *Service) ListByDonor(donorID string) ([]schema.Donation, error) {
	return s.ledger.ListDonationsByDonor(donorID)
}

// ListByRequest returns the donations made to a request
func (s *Service) ListByRequest(requestID string) ([]schema.Donation, error) {
	if _, err := primitive.ObjectIDFromHex(requestID); err != nil {
		return nil, fault.Validationf("invalid request id")
	}
	return s.ledger.ListDonationsByRequest(requestID)
}

func (s *Service) Total(donorID string) (schema.DonationTotal, error) {
	return s.ledger.DonationTotal(donorID)
}
