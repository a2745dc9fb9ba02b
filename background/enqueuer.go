package background

import (
	"context"
	"sync"
	"time"

	"github.com/RichardKnop/machinery/v1"
	"github.com/RichardKnop/machinery/v1/tasks"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enqueuer schedules background jobs. Scheduling never waits for the job.
type Enqueuer interface {
	BroadcastNewRequest(ctx context.Context, requestID primitive.ObjectID) error
	RefreshLeaderboard(ctx context.Context) error
	AwardCompletion(ctx context.Context, requestID primitive.ObjectID) error
}

const (
	// awardRetries bounds the retries of a failed award
	awardRetries    = 5
	localRetryDelay = time.Second
)

// MachineryEnqueuer sends jobs to the redis broker
type MachineryEnqueuer struct {
	server *machinery.Server
}

func NewMachineryEnqueuer(server *machinery.Server) *MachineryEnqueuer {
	return &MachineryEnqueuer{server: server}
}

func (e *MachineryEnqueuer) BroadcastNewRequest(ctx context.Context, requestID primitive.ObjectID) error {
	_, err := e.server.SendTaskWithContext(ctx, &tasks.Signature{
		Name: TaskBroadcastNewRequest,
		Args: []tasks.Arg{
			{Type: "string", Value: requestID.Hex()},
		},
	})
	return err
}

func (e *MachineryEnqueuer) RefreshLeaderboard(ctx context.Context) error {
	_, err := e.server.SendTaskWithContext(ctx, &tasks.Signature{
		Name: TaskRefreshLeaderboard,
	})
	return err
}

func (e *MachineryEnqueuer) AwardCompletion(ctx context.Context, requestID primitive.ObjectID) error {
	_, err := e.server.SendTaskWithContext(ctx, &tasks.Signature{
		Name: TaskAwardCompletion,
		Args: []tasks.Arg{
			{Type: "string", Value: requestID.Hex()},
		},
		RetryCount: awardRetries,
	})
	return err
}

// LocalEnqueuer runs jobs on goroutines of the current process. It is used
// when no broker is configured.
type LocalEnqueuer struct {
	manager    *Manager
	retryDelay time.Duration
	wg         sync.WaitGroup
}

func NewLocalEnqueuer(manager *Manager) *LocalEnqueuer {
	return &LocalEnqueuer{manager: manager, retryDelay: localRetryDelay}
}

func (e *LocalEnqueuer) BroadcastNewRequest(_ context.Context, requestID primitive.ObjectID) error {
	e.run(func() error { return e.manager.BroadcastNewRequest(requestID.Hex()) })
	return nil
}

func (e *LocalEnqueuer) RefreshLeaderboard(_ context.Context) error {
	e.run(e.manager.RefreshLeaderboard)
	return nil
}

// AwardCompletion retries the award with a doubling delay, the way the
// broker retries a failed task
func (e *LocalEnqueuer) AwardCompletion(_ context.Context, requestID primitive.ObjectID) error {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		delay := e.retryDelay
		for attempt := 0; attempt <= awardRetries; attempt++ {
			if err := e.manager.AwardCompletion(requestID.Hex()); err == nil {
				return
			}
			time.Sleep(delay)
			delay *= 2
		}
	}()
	return nil
}

func (e *LocalEnqueuer) run(job func() error) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		// failures are reported by the task itself
		job()
	}()
}

// Wait blocks until every started job returned
func (e *LocalEnqueuer) Wait() {
	e.wg.Wait()
}
