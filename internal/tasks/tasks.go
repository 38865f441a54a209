// Package tasks defines the background task types shared by the server and
// the worker.
package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeNotifyText pushes one text message to a player.
	TypeNotifyText = "notify:text"
)

// Queue names and their defaults.
const (
	QueueNotify = "notify"

	notifyMaxRetry = 3
	notifyTimeout  = 10 * time.Second
)

// NotifyTextPayload is the body of a TypeNotifyText task.
type NotifyTextPayload struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// NewNotifyTextTask builds a push task for userID.
func NewNotifyTextTask(userID, text string) (*asynq.Task, error) {
	payload, err := json.Marshal(NotifyTextPayload{UserID: userID, Text: text})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyText, payload,
		asynq.Queue(QueueNotify),
		asynq.MaxRetry(notifyMaxRetry),
		asynq.Timeout(notifyTimeout),
	), nil
}

// ParseNotifyText decodes a TypeNotifyText payload.
func ParseNotifyText(data []byte) (NotifyTextPayload, error) {
	var p NotifyTextPayload
	err := json.Unmarshal(data, &p)
	return p, err
}
