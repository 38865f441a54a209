package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"undercover/backend/internal/notify"
	"undercover/backend/internal/tasks"
)

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	var info *asynq.TaskInfo
	if i := args.Get(0); i != nil {
		info = i.(*asynq.TaskInfo)
	}
	return info, args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, openID, content string) error {
	args := m.Called(ctx, openID, content)
	return args.Error(0)
}

func isPush(userID, text string) func(*asynq.Task) bool {
	return func(task *asynq.Task) bool {
		p, err := tasks.ParseNotifyText(task.Payload())
		return err == nil && task.Type() == tasks.TypeNotifyText && p.UserID == userID && p.Text == text
	}
}

func TestQueueNotifierSendText(t *testing.T) {
	enq := new(MockEnqueuer)
	enq.On("EnqueueContext", mock.Anything, mock.MatchedBy(isPush("o1", "hello"))).
		Return(&asynq.TaskInfo{ID: "task-1"}, nil).Once()
	enq.On("EnqueueContext", mock.Anything, mock.MatchedBy(isPush("o2", "hello"))).
		Return(nil, errors.New("redis down")).Once()

	q := NewQueueNotifier(enq, nil)
	assert.True(t, q.SendText(context.Background(), "o1", "hello"))
	assert.False(t, q.SendText(context.Background(), "o2", "hello"))
	enq.AssertExpectations(t)
}

func TestQueueNotifierDelegatesNames(t *testing.T) {
	names := &notify.Recorder{Names: map[string]string{"o1": "Alice"}}
	q := NewQueueNotifier(new(MockEnqueuer), names)
	assert.Equal(t, "Alice", q.FetchDisplayName(context.Background(), "o1"))
	assert.Equal(t, "", NewQueueNotifier(new(MockEnqueuer), nil).FetchDisplayName(context.Background(), "o1"))
}

func TestNotifyHandlerDelivers(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, "o1", "hello").Return(nil).Once()

	task, err := tasks.NewNotifyTextTask("o1", "hello")
	require.NoError(t, err)
	require.NoError(t, NewNotifyHandler(sender).ProcessTask(context.Background(), task))
	sender.AssertExpectations(t)
}

func TestNotifyHandlerRetriesPlatformErrors(t *testing.T) {
	sender := new(MockSender)
	boom := errors.New("errcode 45015")
	sender.On("Send", mock.Anything, "o1", "hello").Return(boom).Once()

	task, err := tasks.NewNotifyTextTask("o1", "hello")
	require.NoError(t, err)
	err = NewNotifyHandler(sender).ProcessTask(context.Background(), task)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestNotifyHandlerSkipsBadPayloads(t *testing.T) {
	sender := new(MockSender)
	h := NewNotifyHandler(sender)

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeNotifyText, []byte("{oops")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeNotifyText, []byte(`{"text":"hi"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}
