package command

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"undercover/backend/internal/logging"
	"undercover/backend/internal/messages"
	"undercover/backend/internal/models"
	"undercover/backend/internal/notify"
	"undercover/backend/internal/repository"
	"undercover/backend/internal/service"
	"undercover/backend/internal/words"
)

type MockGame struct {
	mock.Mock
}

func (m *MockGame) CreateRoom(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockGame) JoinRoom(ctx context.Context, userID, roomID string) (*models.Room, error) {
	args := m.Called(ctx, userID, roomID)
	var room *models.Room
	if r := args.Get(0); r != nil {
		room = r.(*models.Room)
	}
	return room, args.Error(1)
}

func (m *MockGame) StartGame(ctx context.Context, userID string) (*models.Room, error) {
	args := m.Called(ctx, userID)
	var room *models.Room
	if r := args.Get(0); r != nil {
		room = r.(*models.Room)
	}
	return room, args.Error(1)
}

func (m *MockGame) VoteEliminate(ctx context.Context, userID string, index int) (*service.VoteResult, error) {
	args := m.Called(ctx, userID, index)
	var res *service.VoteResult
	if r := args.Get(0); r != nil {
		res = r.(*service.VoteResult)
	}
	return res, args.Error(1)
}

func (m *MockGame) ShowStatus(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockGame) ShowWord(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// outsider is a caller with no room, so no trailers are appended.
func outsider(g *MockGame, userID string) {
	g.On("ShowStatus", mock.Anything, userID).Return("", service.ErrNotInRoom).Maybe()
	g.On("ShowWord", mock.Anything, userID).Return("", service.ErrNotInRoom).Maybe()
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "join 1234", Normalize("  JOIN 1234\n"))
	assert.Equal(t, "t3", Normalize("T3"))
}

func TestHelpAndUnknown(t *testing.T) {
	g := new(MockGame)
	outsider(g, "u1")
	r := NewRouter(g)

	assert.Equal(t, messages.Instructions, r.Handle(context.Background(), "u1", " Help "))
	assert.Equal(t, messages.Instructions, r.Handle(context.Background(), "u1", "UNDERCOVER"))
	assert.Equal(t, messages.Unknown, r.Handle(context.Background(), "u1", "dance"))
	assert.Equal(t, messages.Unknown, r.Handle(context.Background(), "u1", ""))
}

func TestCreate(t *testing.T) {
	g := new(MockGame)
	g.On("CreateRoom", mock.Anything, "u1").Return("4321", nil).Once()
	g.On("ShowStatus", mock.Anything, "u1").Return("Room: 4321", nil).Once()
	g.On("ShowWord", mock.Anything, "u1").Return("", service.ErrGameNotStarted).Once()
	r := NewRouter(g)

	reply := r.Handle(context.Background(), "u1", "create")
	assert.Equal(t, messages.RoomCreated("4321")+"\n\nRoom: 4321", reply)
	g.AssertExpectations(t)
}

func TestJoinValidation(t *testing.T) {
	g := new(MockGame)
	outsider(g, "u2")
	r := NewRouter(g)

	assert.Equal(t, messages.JoinFormat, r.Handle(context.Background(), "u2", "join"))
	assert.Equal(t, messages.JoinFormat, r.Handle(context.Background(), "u2", "join   "))
	assert.Equal(t, messages.InvalidRoomID, r.Handle(context.Background(), "u2", "join abcd"))
	assert.Equal(t, messages.InvalidRoomID, r.Handle(context.Background(), "u2", "join 12345"))
	g.AssertNotCalled(t, "JoinRoom", mock.Anything, mock.Anything, mock.Anything)
}

func TestJoin(t *testing.T) {
	g := new(MockGame)
	outsider(g, "u2")
	room := &models.Room{ID: "1234", Players: []string{"u1", "u2"}}
	g.On("JoinRoom", mock.Anything, "u2", "1234").Return(room, nil).Once()
	g.On("JoinRoom", mock.Anything, "u2", "9999").Return(nil, service.ErrRoomNotFound).Once()
	r := NewRouter(g)

	assert.Equal(t, messages.Joined("1234", 2), r.Handle(context.Background(), "u2", "join1234"))
	assert.Equal(t, messages.RoomNotFound, r.Handle(context.Background(), "u2", "JOIN 9999"))
	g.AssertExpectations(t)
}

func TestVote(t *testing.T) {
	g := new(MockGame)
	outsider(g, "u1")
	g.On("VoteEliminate", mock.Anything, "u1", 2).
		Return(&service.VoteResult{Index: 2, Target: "u2", TargetName: "Bob", Outcome: service.OutcomeContinue, Round: 2}, nil).Once()
	g.On("VoteEliminate", mock.Anything, "u1", 3).
		Return(&service.VoteResult{Index: 3, Target: "u3", TargetName: "Cat", Outcome: service.OutcomeCiviliansWin, Round: 2}, nil).Once()
	g.On("VoteEliminate", mock.Anything, "u1", 9).Return(nil, service.ErrNotOwnerVote).Once()
	r := NewRouter(g)

	assert.Equal(t, messages.Eliminated("Bob (No. 2)"), r.Handle(context.Background(), "u1", "t2"))
	assert.Equal(t, messages.Eliminated("Cat (No. 3)")+"\n\n"+messages.CiviliansWin, r.Handle(context.Background(), "u1", "T 3"))
	assert.Equal(t, messages.NotOwnerVote, r.Handle(context.Background(), "u1", "t9"))
	assert.Equal(t, messages.VoteFormat, r.Handle(context.Background(), "u1", "t99999999999999999999999"))
	assert.Equal(t, messages.Unknown, r.Handle(context.Background(), "u1", "t2x"))
	g.AssertExpectations(t)
}

func TestStatusAndWordAreNotRepeated(t *testing.T) {
	g := new(MockGame)
	g.On("ShowStatus", mock.Anything, "u1").Return("STATUS", nil)
	g.On("ShowWord", mock.Anything, "u1").Return("apple", nil)
	r := NewRouter(g)

	assert.Equal(t, "STATUS\n\n"+messages.YourWord("apple"), r.Handle(context.Background(), "u1", "status"))
	assert.Equal(t, messages.YourWord("apple")+"\n\nSTATUS", r.Handle(context.Background(), "u1", "word"))
	assert.Equal(t, messages.Unknown+"\n\nSTATUS\n\n"+messages.YourWord("apple"), r.Handle(context.Background(), "u1", "hello"))
}

func TestStart(t *testing.T) {
	g := new(MockGame)
	g.On("StartGame", mock.Anything, "u1").Return(&models.Room{ID: "1234"}, nil).Once()
	g.On("ShowStatus", mock.Anything, "u1").Return("STATUS", nil)
	g.On("ShowWord", mock.Anything, "u1").Return("apple", nil)
	r := NewRouter(g)

	reply := r.Handle(context.Background(), "u1", "start")
	assert.Equal(t, messages.GameStarted(messages.YourWord("apple"))+"\n\nSTATUS", reply)
	assert.Equal(t, 1, strings.Count(reply, messages.YourWord("apple")))
}

func TestInfrastructureErrorsBecomeApology(t *testing.T) {
	g := new(MockGame)
	g.On("CreateRoom", mock.Anything, "u1").Return("", errors.New("redis: connection refused")).Once()
	g.On("ShowStatus", mock.Anything, "u1").Return("", errors.New("redis: connection refused"))
	g.On("ShowWord", mock.Anything, "u1").Return("", errors.New("redis: connection refused"))
	r := NewRouter(g)

	assert.Equal(t, messages.SystemError, r.Handle(context.Background(), "u1", "create"))
}

func TestLogLinesCarryRequestID(t *testing.T) {
	hook := logtest.NewGlobal()
	defer logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))

	g := new(MockGame)
	g.On("CreateRoom", mock.Anything, "u1").Return("", errors.New("redis: connection refused")).Once()
	outsider(g, "u1")
	r := NewRouter(g)

	ctx := logging.WithRequestID(context.Background(), "req-42")
	assert.Equal(t, messages.SystemError, r.Handle(ctx, "u1", "create"))

	var failed *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "Command failed" {
			failed = e
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "req-42", failed.Data["request_id"])
	assert.Equal(t, "u1", failed.Data["user_id"])
	assert.Equal(t, "create", failed.Data["command"])
}

func TestPanicsAreRecovered(t *testing.T) {
	g := new(MockGame)
	g.On("CreateRoom", mock.Anything, "u1").Panic("boom").Once()
	g.On("ShowStatus", mock.Anything, "u1").Panic("boom")
	g.On("ShowWord", mock.Anything, "u1").Return("", service.ErrNotInRoom)
	r := NewRouter(g)

	assert.NotPanics(t, func() {
		assert.Equal(t, messages.SystemError, r.Handle(context.Background(), "u1", "create"))
	})
}

func TestFullGameThroughRouter(t *testing.T) {
	backend := repository.NewMemoryBackend()
	push := &notify.Recorder{}
	svc := service.NewGameService(
		repository.NewRoomRepository(backend, time.Hour),
		repository.NewUserRepository(backend),
		words.NewPool([]models.WordPair{{Civilian: "apple", Undercover: "banana"}}, nil),
		push,
	)
	r := NewRouter(svc)
	ctx := context.Background()

	reply := r.Handle(ctx, "u1", "create")
	require.True(t, strings.HasPrefix(reply, "Room created!"), reply)
	user, err := repository.NewUserRepository(backend).Get(ctx, "u1")
	require.NoError(t, err)
	roomID := user.CurrentRoomID

	for _, id := range []string{"u2", "u3", "u4"} {
		reply = r.Handle(ctx, id, "join "+roomID)
		assert.Contains(t, reply, "Joined room "+roomID)
		assert.Contains(t, reply, "Status: waiting")
	}

	reply = r.Handle(ctx, "u2", "start")
	assert.True(t, strings.HasPrefix(reply, messages.NotOwnerStart), reply)

	reply = r.Handle(ctx, "u1", "start")
	assert.Contains(t, reply, "Game started!")
	assert.Contains(t, reply, "Status: playing")

	room, err := svc.Room(ctx, roomID)
	require.NoError(t, err)
	require.Len(t, room.Undercovers, 1)
	undercover := room.Undercovers[0]
	target := room.IndexOf(undercover)

	reply = r.Handle(ctx, "u3", "word")
	if undercover == "u3" {
		assert.True(t, strings.HasPrefix(reply, messages.YourWord("banana")), reply)
	} else {
		assert.True(t, strings.HasPrefix(reply, messages.YourWord("apple")), reply)
	}

	reply = r.Handle(ctx, "u1", "t"+strconv.Itoa(target))
	assert.Contains(t, reply, messages.CiviliansWin)
	assert.NotContains(t, reply, "Status:")

	reply = r.Handle(ctx, "u1", "status")
	assert.Equal(t, messages.NotInRoom, reply)
}
