package background

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/notification"
	"github.com/reliefhub/relief-api/schema"
	"github.com/reliefhub/relief-api/score"
)

const (
	TaskBroadcastNewRequest = "broadcast_new_request"
	TaskRefreshLeaderboard  = "refresh_leaderboard"
	TaskAwardCompletion     = "award_completion"

	taskTimeout = time.Minute
)

// BroadcastNewRequest is a background job to notify every other active user
// about a newly created request. The audience is bounded by the broadcast
// limit. A request that is no longer open is skipped.
func (m *Manager) BroadcastNewRequest(requestID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return err
	}

	req, err := m.requests.GetRequest(ctx, id)
	if err != nil {
		return m.report(TaskBroadcastNewRequest, err)
	}
	if req.Status != schema.RequestOpen || !req.IsActive {
		log.WithField("request", requestID).Debug("request no longer open, skip broadcast")
		return nil
	}

	userIDs, err := m.users.ListActiveUserIDs(ctx, req.RequesterID, m.broadcastLimit)
	if err != nil {
		return m.report(TaskBroadcastNewRequest, err)
	}

	n, err := m.notifier.NotifyMany(ctx, userIDs, notification.NewRequest{
		RequestType: req.Type,
		Title:       req.Title,
		Urgency:     req.Urgency,
	}, &req.ID)
	if err != nil {
		return m.report(TaskBroadcastNewRequest, err)
	}

	log.WithField("request", requestID).WithField("users", n).Info("broadcast new request")
	return nil
}

// RefreshLeaderboard is a background job to recompute the stored rank of
// every active user
func (m *Manager) RefreshLeaderboard() error {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	if _, err := m.reputation.RefreshLeaderboard(ctx); err != nil {
		return m.report(TaskRefreshLeaderboard, err)
	}
	return nil
}

// AwardCompletion is a background job to credit the volunteer of a
// completed request. It returns an error while the award can still be
// applied, so the job is retried; a request credited already is done.
func (m *Manager) AwardCompletion(requestID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return err
	}

	req, err := m.requests.GetRequest(ctx, id)
	if err != nil {
		return m.report(TaskAwardCompletion, err)
	}
	if req.Status != schema.RequestCompleted || req.AwardedAt != nil {
		log.WithField("request", requestID).Debug("request not awaiting an award, skip")
		return nil
	}

	award, err := m.reputation.Award(ctx, req.VolunteerID, req)
	if err != nil {
		if errors.Is(err, score.ErrAlreadyAwarded) {
			return nil
		}
		return m.report(TaskAwardCompletion, err)
	}

	log.WithField("request", requestID).WithField("points", award.Points).Info("awarded completion")
	return nil
}

func (m *Manager) report(task string, err error) error {
	log.WithError(err).WithField("task", task).Error("background task failed")
	sentry.CaptureException(err)
	return err
}
