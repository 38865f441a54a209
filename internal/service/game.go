// Package service implements the game rules on top of the repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"undercover/backend/internal/fsm"
	"undercover/backend/internal/messages"
	"undercover/backend/internal/models"
	"undercover/backend/internal/notify"
	"undercover/backend/internal/repository"
	"undercover/backend/internal/words"
)

// Room id range, inclusive.
const (
	roomIDMin = 1000
	roomIDMax = 9999
)

// Default player limits.
const (
	DefaultMinPlayers = 3
	DefaultMaxPlayers = 12
)

// Random is the subset of *rand.Rand the service needs.
type Random interface {
	IntN(n int) int
	Perm(n int) []int
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Perm(n int) []int { return rand.Perm(n) }

// Option configures a GameService.
type Option func(*GameService)

// WithRand sets the random source. The source must be safe for concurrent
// use if the service is shared between goroutines.
func WithRand(r Random) Option {
	return func(s *GameService) { s.rng = r }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *GameService) { s.now = now }
}

// WithPlayerLimits overrides the minimum and maximum room sizes.
func WithPlayerLimits(minPlayers, maxPlayers int) Option {
	return func(s *GameService) {
		if minPlayers > 0 {
			s.minPlayers = minPlayers
		}
		if maxPlayers > 0 {
			s.maxPlayers = maxPlayers
		}
	}
}

// GameService orchestrates rooms and users.
type GameService struct {
	rooms repository.RoomRepository
	users repository.UserRepository
	pool  *words.Pool
	push  notify.Notifier
	rng   Random
	now   func() time.Time
	locks roomLocks

	minPlayers int
	maxPlayers int
}

// NewGameService creates a GameService. A nil push disables notifications.
func NewGameService(rooms repository.RoomRepository, users repository.UserRepository, pool *words.Pool, push notify.Notifier, opts ...Option) *GameService {
	if rooms == nil || users == nil {
		panic("repositories cannot be nil for GameService")
	}
	if pool == nil {
		panic("word pool cannot be nil for GameService")
	}
	if push == nil {
		push = notify.Nop{}
	}
	s := &GameService{
		rooms:      rooms,
		users:      users,
		pool:       pool,
		push:       push,
		rng:        globalRand{},
		now:        time.Now,
		minPlayers: DefaultMinPlayers,
		maxPlayers: DefaultMaxPlayers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VoteResult describes a successful elimination.
type VoteResult struct {
	Index      int
	Target     string
	TargetName string
	Outcome    Outcome
	Round      int
}

// CreateRoom opens a new waiting room owned by userID and returns its id.
func (s *GameService) CreateRoom(ctx context.Context, userID string) (string, error) {
	logCtx := logrus.WithFields(logrus.Fields{"op": "create_room", "user_id": userID})

	roomID, err := s.generateRoomID(ctx)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate room id")
		return "", fmt.Errorf("create room: %w", err)
	}
	logCtx = logCtx.WithField("room_id", roomID)

	if !fsm.CanTransition(fsm.Waiting, fsm.EventCreate) {
		return "", fmt.Errorf("create room: %w", fsm.ErrIllegalTransition)
	}
	room := models.NewRoom(roomID, userID, s.now().UTC())
	if err := s.rooms.Save(ctx, room); err != nil {
		logCtx.WithError(err).Error("Failed to save new room")
		return "", fmt.Errorf("create room: %w", err)
	}

	user := &models.User{ID: userID, DisplayName: messages.DefaultDisplayName(1), CurrentRoomID: roomID}
	if err := s.users.Save(ctx, user); err != nil {
		logCtx.WithError(err).Error("Failed to save room owner")
		return "", fmt.Errorf("create room: %w", err)
	}
	s.refreshDisplayName(ctx, user)

	logCtx.Info("Room created")
	return roomID, nil
}

// generateRoomID samples [1000, 9999] until it finds an id not in use.
func (s *GameService) generateRoomID(ctx context.Context) (string, error) {
	for {
		id := strconv.Itoa(roomIDMin + s.rng.IntN(roomIDMax-roomIDMin+1))
		exists, err := s.rooms.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
}

// JoinRoom adds userID to a waiting room.
func (s *GameService) JoinRoom(ctx context.Context, userID, roomID string) (*models.Room, error) {
	logCtx := logrus.WithFields(logrus.Fields{"op": "join_room", "user_id": userID, "room_id": roomID})

	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.loadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != fsm.Waiting || !fsm.CanTransition(room.Status, fsm.EventJoin) {
		return nil, ErrRoomAlreadyStarted
	}
	if room.IsPlayer(userID) {
		return nil, ErrAlreadyInRoom
	}
	if room.PlayerCount() >= s.maxPlayers {
		return nil, ErrRoomFull
	}

	room.Players = append(room.Players, userID)
	if err := s.rooms.Save(ctx, room); err != nil {
		logCtx.WithError(err).Error("Failed to save room")
		return nil, fmt.Errorf("join room: %w", err)
	}

	count := room.PlayerCount()
	user := &models.User{ID: userID, DisplayName: messages.DefaultDisplayName(count), CurrentRoomID: roomID}
	if err := s.users.Save(ctx, user); err != nil {
		logCtx.WithError(err).Error("Failed to save user")
		return nil, fmt.Errorf("join room: %w", err)
	}
	s.refreshDisplayName(ctx, user)

	others := make([]string, 0, count-1)
	for _, p := range room.Players {
		if p != userID {
			others = append(others, p)
		}
	}
	s.broadcast(ctx, others, messages.JoinNotification(count))

	logCtx.WithField("players", count).Info("Player joined room")
	return room, nil
}

// StartGame deals roles and words in the caller's room.
func (s *GameService) StartGame(ctx context.Context, userID string) (*models.Room, error) {
	logCtx := logrus.WithFields(logrus.Fields{"op": "start_game", "user_id": userID})

	var started *models.Room
	err := s.withCallerRoom(ctx, userID, func(_ *models.User, room *models.Room) error {
		logCtx = logCtx.WithField("room_id", room.ID)

		if !room.IsCreator(userID) {
			return ErrNotOwnerStart
		}
		count := room.PlayerCount()
		if count < s.minPlayers {
			return errInsufficientPlayers(s.minPlayers)
		}
		switch room.Status {
		case fsm.Playing:
			return ErrGameAlreadyStarted
		case fsm.Ended:
			return ErrGameEnded
		}
		next, err := fsm.Next(room.Status, fsm.EventStart)
		if err != nil {
			return ErrGameAlreadyStarted
		}

		n, err := UndercoverCount(count)
		if err != nil {
			return err
		}
		pair, err := s.pool.RandomPair()
		if err != nil {
			logCtx.WithError(err).Error("Failed to draw word pair")
			return fmt.Errorf("start game: %w", err)
		}

		room.Undercovers = s.pickUndercovers(room.Players, n)
		room.Words = &pair
		room.Status = next
		room.CurrentRound = 1

		if err := s.rooms.Save(ctx, room); err != nil {
			logCtx.WithError(err).Error("Failed to save started room")
			return fmt.Errorf("start game: %w", err)
		}
		started = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range started.Players {
		s.send(ctx, p, messages.StartNotification(started.WordFor(p)))
	}
	s.send(ctx, started.Creator, messages.OwnerReminder)

	logCtx.WithField("undercovers", len(started.Undercovers)).Info("Game started")
	return started, nil
}

// pickUndercovers chooses n distinct players uniformly without replacement.
// The result keeps join order.
func (s *GameService) pickUndercovers(players []string, n int) []string {
	chosen := make(map[int]bool, n)
	for _, i := range s.rng.Perm(len(players))[:n] {
		chosen[i] = true
	}
	out := make([]string, 0, n)
	for i, p := range players {
		if chosen[i] {
			out = append(out, p)
		}
	}
	return out
}

// VoteEliminate lets the owner eliminate the player at the 1-based index.
func (s *GameService) VoteEliminate(ctx context.Context, userID string, index int) (*VoteResult, error) {
	logCtx := logrus.WithFields(logrus.Fields{"op": "vote", "user_id": userID, "index": index})

	var (
		result *VoteResult
		ended  *models.Room
		status *models.Room
	)
	err := s.withCallerRoom(ctx, userID, func(_ *models.User, room *models.Room) error {
		logCtx = logCtx.WithField("room_id", room.ID)

		if room.Status != fsm.Playing || !fsm.CanTransition(room.Status, fsm.EventVote) {
			return ErrGameNotPlaying
		}
		if !room.IsCreator(userID) {
			return ErrNotOwnerVote
		}
		target, ok := room.PlayerAt(index)
		if !ok {
			return errInvalidIndex(room.PlayerCount())
		}
		if room.IsEliminated(target) {
			return ErrAlreadyEliminated
		}

		room.Eliminated = append(room.Eliminated, target)
		if err := s.rooms.Save(ctx, room); err != nil {
			logCtx.WithError(err).Error("Failed to save elimination")
			return fmt.Errorf("vote: %w", err)
		}

		outcome := Evaluate(room)
		if outcome.Finished() {
			next, err := fsm.Next(room.Status, fsm.EventEnd)
			if err != nil {
				return fmt.Errorf("vote: %w", err)
			}
			room.Status = next
			ended = room
		} else {
			room.CurrentRound++
			status = room
		}
		if err := s.rooms.Save(ctx, room); err != nil {
			logCtx.WithError(err).Error("Failed to save round result")
			return fmt.Errorf("vote: %w", err)
		}

		result = &VoteResult{
			Index:      index,
			Target:     target,
			TargetName: s.displayName(ctx, target, index),
			Outcome:    outcome,
			Round:      room.CurrentRound,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if ended != nil {
		s.broadcast(ctx, ended.Players, result.Outcome.Message())
		s.clearBackReferences(ctx, ended)
		logCtx.WithField("outcome", result.Outcome.String()).Info("Game ended")
		return result, nil
	}

	summary := messages.RoundNotification(status.CurrentRound) + "\n\n" +
		messages.Eliminated(result.TargetName) + "\n\n" +
		s.renderRoom(ctx, status)
	s.broadcast(ctx, status.Players, summary)
	logCtx.WithField("round", status.CurrentRound).Info("Player eliminated")
	return result, nil
}

// ShowStatus renders the caller's view of their room.
func (s *GameService) ShowStatus(ctx context.Context, userID string) (string, error) {
	user, room, err := s.resolve(ctx, userID)
	if err != nil {
		return "", err
	}
	index := room.IndexOf(userID)
	if index == 0 {
		return "", ErrNotInCurrentRoom
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your info: %s (No. %d)\n\n", user.DisplayName, index)
	b.WriteString(s.renderRoom(ctx, room))
	if room.Status == fsm.Playing && room.IsCreator(userID) {
		b.WriteString("\n\n")
		b.WriteString(messages.OwnerStatusReminder)
	}
	return b.String(), nil
}

// renderRoom lists the room, its players and round information.
func (s *GameService) renderRoom(ctx context.Context, room *models.Room) string {
	lines := []string{
		"Room: " + room.ID,
		"Status: " + string(room.Status),
		"Players:",
	}
	for i, p := range room.Players {
		name := s.displayName(ctx, p, i+1)
		if room.IsCreator(p) {
			name += " (owner)"
		}
		if room.IsEliminated(p) {
			name += " (eliminated)"
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, name))
	}
	if room.Status == fsm.Playing {
		lines = append(lines,
			"",
			fmt.Sprintf("Round: %d", room.CurrentRound),
			fmt.Sprintf("Eliminated: %d", len(room.Eliminated)),
		)
	}
	return strings.Join(lines, "\n")
}

// ShowWord returns the caller's secret word.
func (s *GameService) ShowWord(ctx context.Context, userID string) (string, error) {
	_, room, err := s.resolve(ctx, userID)
	if err != nil {
		return "", err
	}
	switch room.Status {
	case fsm.Waiting:
		return "", ErrGameNotStarted
	case fsm.Ended:
		return "", ErrGameEnded
	}
	if !room.IsPlayer(userID) {
		return "", ErrNotInCurrentRoom
	}
	if room.IsEliminated(userID) {
		return "", ErrPlayerEliminated
	}
	return room.WordFor(userID), nil
}

// Room returns a snapshot of a room for inspection.
func (s *GameService) Room(ctx context.Context, roomID string) (*models.Room, error) {
	return s.loadRoom(ctx, roomID)
}

func (s *GameService) loadRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		logrus.WithError(err).WithField("room_id", roomID).Error("Failed to load room")
		return nil, fmt.Errorf("load room %s: %w", roomID, err)
	}
	return room, nil
}

// resolve follows the caller's back-reference to their current room.
func (s *GameService) resolve(ctx context.Context, userID string) (*models.User, *models.Room, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotInRoom
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load user")
		return nil, nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	if !user.InRoom() {
		return nil, nil, ErrNotInRoom
	}
	room, err := s.loadRoom(ctx, user.CurrentRoomID)
	if err != nil {
		return nil, nil, err
	}
	return user, room, nil
}

// withCallerRoom runs fn with the caller's room loaded under the room lock.
func (s *GameService) withCallerRoom(ctx context.Context, userID string, fn func(*models.User, *models.Room) error) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotInRoom
		}
		return fmt.Errorf("load user %s: %w", userID, err)
	}
	if !user.InRoom() {
		return ErrNotInRoom
	}

	unlock := s.locks.lock(user.CurrentRoomID)
	defer unlock()

	room, err := s.loadRoom(ctx, user.CurrentRoomID)
	if err != nil {
		return err
	}
	return fn(user, room)
}

func (s *GameService) displayName(ctx context.Context, userID string, index int) string {
	u, err := s.users.Get(ctx, userID)
	if err != nil || u.DisplayName == "" {
		return messages.DefaultDisplayName(index)
	}
	return u.DisplayName
}

// refreshDisplayName replaces the default name with the platform nickname.
// Failures are logged and otherwise ignored.
func (s *GameService) refreshDisplayName(ctx context.Context, user *models.User) {
	name := s.push.FetchDisplayName(ctx, user.ID)
	if name == "" || name == user.DisplayName {
		return
	}
	user.DisplayName = name
	if err := s.users.Save(ctx, user); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("Failed to save refreshed display name")
	}
}

// clearBackReferences detaches every player still pointing at room.
func (s *GameService) clearBackReferences(ctx context.Context, room *models.Room) {
	for _, p := range room.Players {
		u, err := s.users.Get(ctx, p)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				logrus.WithError(err).WithField("user_id", p).Warn("Failed to load user for cleanup")
			}
			continue
		}
		if u.CurrentRoomID != room.ID {
			continue
		}
		u.LeaveRoom()
		if err := s.users.Save(ctx, u); err != nil {
			logrus.WithError(err).WithField("user_id", p).Warn("Failed to clear room reference")
		}
	}
}

func (s *GameService) send(ctx context.Context, userID, text string) {
	if !s.push.SendText(ctx, userID, text) {
		logrus.WithField("user_id", userID).Debug("Push not delivered")
	}
}

func (s *GameService) broadcast(ctx context.Context, userIDs []string, text string) {
	for _, id := range userIDs {
		s.send(ctx, id, text)
	}
}
