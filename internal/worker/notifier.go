package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"undercover/backend/internal/notify"
	"undercover/backend/internal/tasks"
)

// Enqueuer is the part of *asynq.Client the notifier uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier turns pushes into background tasks so a slow platform API
// never holds a room lock. Display names are still looked up synchronously.
type QueueNotifier struct {
	client Enqueuer
	names  notify.Notifier
	log    *logrus.Entry
}

// NewQueueNotifier creates a QueueNotifier. A nil names disables lookups.
func NewQueueNotifier(client Enqueuer, names notify.Notifier) *QueueNotifier {
	if client == nil {
		panic("enqueuer cannot be nil for QueueNotifier")
	}
	if names == nil {
		names = notify.Nop{}
	}
	return &QueueNotifier{
		client: client,
		names:  names,
		log:    logrus.WithField("component", "queue_notifier"),
	}
}

func (q *QueueNotifier) SendText(ctx context.Context, userID, text string) bool {
	task, err := tasks.NewNotifyTextTask(userID, text)
	if err != nil {
		q.log.WithError(err).WithField("user_id", userID).Error("Failed to build push task")
		return false
	}
	info, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.WithError(err).WithField("user_id", userID).Warn("Failed to enqueue push task")
		return false
	}
	q.log.WithFields(logrus.Fields{"user_id": userID, "task_id": info.ID}).Debug("Push task enqueued")
	return true
}

func (q *QueueNotifier) FetchDisplayName(ctx context.Context, userID string) string {
	return q.names.FetchDisplayName(ctx, userID)
}
