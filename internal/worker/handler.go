package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"undercover/backend/internal/tasks"
)

// Sender delivers a text message to the platform. *wechat.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, openID, content string) error
}

// NotifyHandler processes TypeNotifyText tasks.
type NotifyHandler struct {
	sender Sender
}

func NewNotifyHandler(sender Sender) *NotifyHandler {
	return &NotifyHandler{sender: sender}
}

// ProcessTask implements asynq.Handler.
func (h *NotifyHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	retry, _ := asynq.GetRetryCount(ctx)
	logCtx := logrus.WithFields(logrus.Fields{
		"task_type": t.Type(),
		"retry":     retry,
	})

	payload, err := tasks.ParseNotifyText(t.Payload())
	if err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.UserID == "" {
		return fmt.Errorf("push task without user id: %w", asynq.SkipRetry)
	}
	logCtx = logCtx.WithField("user_id", payload.UserID)

	if err := h.sender.Send(ctx, payload.UserID, payload.Text); err != nil {
		logCtx.WithError(err).Warn("Push delivery failed")
		return fmt.Errorf("failed to push to %s: %w", payload.UserID, err)
	}
	logCtx.Debug("Push delivered")
	return nil
}
