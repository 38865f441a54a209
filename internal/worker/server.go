// Package worker runs background push delivery on asynq.
package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"undercover/backend/internal/tasks"
)

// WorkerServer wraps the asynq server lifecycle.
type WorkerServer struct {
	server *asynq.Server
	sender Sender
	log    *logrus.Entry
}

// NewWorkerServer creates a server consuming the notify queue with the given
// concurrency.
func NewWorkerServer(redisOpt asynq.RedisConnOpt, sender Sender, concurrency int) *WorkerServer {
	logEntry := logrus.WithField("component", "worker_server")
	if concurrency <= 0 {
		concurrency = 1
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				tasks.QueueNotify: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retryCount, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logEntry.WithFields(logrus.Fields{
					"task_type": task.Type(),
					"retries":   retryCount,
					"max_retry": maxRetry,
				}).Errorf("Task failed: %v", err)
			}),
		},
	)

	return &WorkerServer{server: server, sender: sender, log: logEntry}
}

// NewServeMux registers every task handler.
func NewServeMux(sender Sender) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeNotifyText, NewNotifyHandler(sender))
	return mux
}

// Run blocks until the server stops.
func (ws *WorkerServer) Run() error {
	ws.log.Info("Worker server starting...")
	if err := ws.server.Run(NewServeMux(ws.sender)); err != nil && !errors.Is(err, asynq.ErrServerClosed) {
		return err
	}
	ws.log.Info("Worker server stopped.")
	return nil
}

// Shutdown stops the server gracefully.
func (ws *WorkerServer) Shutdown() {
	ws.log.Info("Shutting down worker server...")
	ws.server.Shutdown()
}
