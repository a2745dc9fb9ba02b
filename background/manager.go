package background

import (
	"context"
	"errors"

	"github.com/RichardKnop/machinery/v1"
	"github.com/RichardKnop/machinery/v1/config"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/notification"
	"github.com/reliefhub/relief-api/schema"
	"github.com/reliefhub/relief-api/score"
	"github.com/reliefhub/relief-api/store"
)

const (
	DefaultQueue = "relief_background"
	workerName   = "relief-worker"
	concurrency  = 5
)

var log = logrus.WithField("prefix", "background")

// Notifier stores and pushes one notification for many users
type Notifier interface {
	NotifyMany(ctx context.Context, userIDs []string, p notification.Payload, requestID *primitive.ObjectID) (int, error)
}

// Reputation credits volunteers and recomputes the leaderboard positions
// of all users
type Reputation interface {
	Award(ctx context.Context, volunteerID string, req *schema.Request) (*score.Award, error)
	RefreshLeaderboard(ctx context.Context) (int, error)
}

// Manager owns the background task functions and the machinery worker
// that runs them
type Manager struct {
	requests       store.RequestStore
	users          store.UserStore
	notifier       Notifier
	reputation     Reputation
	broadcastLimit int64

	taskServer *machinery.Server
	worker     *machinery.Worker
}

func New(requests store.RequestStore, users store.UserStore, notifier Notifier, reputation Reputation, broadcastLimit int64, taskServer *machinery.Server) *Manager {
	return &Manager{
		requests:       requests,
		users:          users,
		notifier:       notifier,
		reputation:     reputation,
		broadcastLimit: broadcastLimit,
		taskServer:     taskServer,
	}
}

// NewTaskServer connects a machinery server to the redis broker
func NewTaskServer(redisConn string) (*machinery.Server, error) {
	return machinery.NewServer(&config.Config{
		Broker:        redisConn,
		DefaultQueue:  DefaultQueue,
		ResultBackend: redisConn,
	})
}

// RegisterTasks makes the task functions callable by name on the task server
func (m *Manager) RegisterTasks() error {
	if m.taskServer == nil {
		return errors.New("no task server configured")
	}
	return m.taskServer.RegisterTasks(map[string]interface{}{
		TaskBroadcastNewRequest: m.BroadcastNewRequest,
		TaskRefreshLeaderboard:  m.RefreshLeaderboard,
		TaskAwardCompletion:     m.AwardCompletion,
	})
}

// Run spawns workers to execute background jobs. It blocks until the
// worker quits.
func (m *Manager) Run() error {
	if m.taskServer == nil {
		return errors.New("no task server configured")
	}
	if m.worker != nil {
		return errors.New("background worker has started")
	}
	m.worker = m.taskServer.NewWorker(workerName, concurrency)
	if err := m.worker.Launch(); err != nil && err != machinery.ErrWorkerQuitGracefully {
		return err
	}
	return nil
}

// Stop asks a running worker to finish its current tasks and quit
func (m *Manager) Stop() {
	if m.worker != nil {
		m.worker.Quit()
	}
}
