// Package command maps free-text player input onto game operations.
package command

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"undercover/backend/internal/logging"
	"undercover/backend/internal/messages"
	"undercover/backend/internal/models"
	"undercover/backend/internal/service"
)

// Game is the set of operations the router drives.
type Game interface {
	CreateRoom(ctx context.Context, userID string) (string, error)
	JoinRoom(ctx context.Context, userID, roomID string) (*models.Room, error)
	StartGame(ctx context.Context, userID string) (*models.Room, error)
	VoteEliminate(ctx context.Context, userID string, index int) (*service.VoteResult, error)
	ShowStatus(ctx context.Context, userID string) (string, error)
	ShowWord(ctx context.Context, userID string) (string, error)
}

// Command aliases, matched against trimmed lowercase input.
var (
	HelpAliases   = []string{"help", "undercover"}
	CreateAliases = []string{"create"}
	StatusAliases = []string{"status"}
	WordAliases   = []string{"word"}
	StartAliases  = []string{"start"}
)

const joinPrefix = "join"

var (
	votePattern   = regexp.MustCompile(`^t\s*(\d+)$`)
	roomIDPattern = regexp.MustCompile(`^\d{4}$`)
)

// matcher is one command strategy. showsStatus and showsWord suppress the
// corresponding trailer when the command already printed it.
type matcher struct {
	name        string
	match       func(input string) bool
	run         func(ctx context.Context, userID, input string) (string, error)
	showsStatus bool
	showsWord   bool
}

// Router dispatches input to the first matching command.
type Router struct {
	game     Game
	matchers []matcher
}

// NewRouter builds a router with the fixed command order:
// help, create, status, word, start, join, vote.
func NewRouter(game Game) *Router {
	if game == nil {
		panic("game cannot be nil for Router")
	}
	r := &Router{game: game}
	r.matchers = []matcher{
		{name: "help", match: exact(HelpAliases), run: r.help},
		{name: "create", match: exact(CreateAliases), run: r.create},
		{name: "status", match: exact(StatusAliases), run: r.status, showsStatus: true},
		{name: "word", match: exact(WordAliases), run: r.word, showsWord: true},
		{name: "start", match: exact(StartAliases), run: r.start, showsWord: true},
		{name: "join", match: prefix(joinPrefix), run: r.join},
		{name: "vote", match: votePattern.MatchString, run: r.vote},
	}
	return r
}

func exact(aliases []string) func(string) bool {
	return func(input string) bool {
		for _, a := range aliases {
			if input == a {
				return true
			}
		}
		return false
	}
}

func prefix(p string) func(string) bool {
	return func(input string) bool { return strings.HasPrefix(input, p) }
}

// Normalize trims and case-folds raw input.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Handle routes one message and returns the reply. It never returns an empty
// string and never panics.
func (r *Router) Handle(ctx context.Context, userID, raw string) string {
	input := Normalize(raw)
	logCtx := logging.FromContext(ctx).WithFields(logrus.Fields{"user_id": userID, "input": input})

	reply := messages.Unknown
	var matched *matcher
	for i := range r.matchers {
		if r.matchers[i].match(input) {
			matched = &r.matchers[i]
			break
		}
	}
	if matched != nil {
		logCtx = logCtx.WithField("command", matched.name)
		reply = r.execute(ctx, logCtx, matched, userID, input)
	}

	var b strings.Builder
	b.WriteString(reply)
	if matched == nil || !matched.showsStatus {
		if status, ok := r.trailer(logCtx, func() (string, error) { return r.game.ShowStatus(ctx, userID) }); ok {
			b.WriteString("\n\n")
			b.WriteString(status)
		}
	}
	if matched == nil || !matched.showsWord {
		if word, ok := r.trailer(logCtx, func() (string, error) { return r.game.ShowWord(ctx, userID) }); ok {
			b.WriteString("\n\n")
			b.WriteString(messages.YourWord(word))
		}
	}
	return b.String()
}

func (r *Router) execute(ctx context.Context, logCtx *logrus.Entry, m *matcher, userID, input string) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			logCtx.WithField("panic", rec).Error("Command panicked")
			reply = messages.SystemError
		}
	}()

	out, err := m.run(ctx, userID, input)
	if err != nil {
		return replyForError(logCtx, err)
	}
	return out
}

// trailer runs an auxiliary lookup. Domain errors just mean there is
// nothing to show.
func (r *Router) trailer(logCtx *logrus.Entry, fn func() (string, error)) (out string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			logCtx.WithField("panic", rec).Error("Reply trailer panicked")
			out, ok = "", false
		}
	}()

	out, err := fn()
	if err != nil {
		if _, isDomain := service.AsDomain(err); !isDomain {
			logCtx.WithError(err).Warn("Failed to build reply trailer")
		}
		return "", false
	}
	return out, true
}

func replyForError(logCtx *logrus.Entry, err error) string {
	if de, ok := service.AsDomain(err); ok {
		logCtx.WithField("code", de.Code).Debug("Command rejected")
		return de.Message
	}
	logCtx.WithError(err).Error("Command failed")
	return messages.SystemError
}

func (r *Router) help(context.Context, string, string) (string, error) {
	return messages.Instructions, nil
}

func (r *Router) create(ctx context.Context, userID, _ string) (string, error) {
	roomID, err := r.game.CreateRoom(ctx, userID)
	if err != nil {
		return "", err
	}
	return messages.RoomCreated(roomID), nil
}

func (r *Router) status(ctx context.Context, userID, _ string) (string, error) {
	return r.game.ShowStatus(ctx, userID)
}

func (r *Router) word(ctx context.Context, userID, _ string) (string, error) {
	w, err := r.game.ShowWord(ctx, userID)
	if err != nil {
		return "", err
	}
	return messages.YourWord(w), nil
}

func (r *Router) start(ctx context.Context, userID, _ string) (string, error) {
	if _, err := r.game.StartGame(ctx, userID); err != nil {
		return "", err
	}
	w, err := r.game.ShowWord(ctx, userID)
	if err != nil {
		return messages.GameStarted(""), nil
	}
	return messages.GameStarted(messages.YourWord(w)), nil
}

func (r *Router) join(ctx context.Context, userID, input string) (string, error) {
	roomID := strings.TrimSpace(strings.TrimPrefix(input, joinPrefix))
	if roomID == "" {
		return messages.JoinFormat, nil
	}
	if !roomIDPattern.MatchString(roomID) {
		return messages.InvalidRoomID, nil
	}
	room, err := r.game.JoinRoom(ctx, userID, roomID)
	if err != nil {
		return "", err
	}
	return messages.Joined(room.ID, room.PlayerCount()), nil
}

func (r *Router) vote(ctx context.Context, userID, input string) (string, error) {
	m := votePattern.FindStringSubmatch(input)
	if m == nil {
		return messages.VoteFormat, nil
	}
	index, err := strconv.Atoi(m[1])
	if err != nil {
		return messages.VoteFormat, nil
	}
	result, err := r.game.VoteEliminate(ctx, userID, index)
	if err != nil {
		return "", err
	}
	reply := messages.Eliminated(fmt.Sprintf("%s (No. %d)", result.TargetName, result.Index))
	if result.Outcome.Finished() {
		reply += "\n\n" + result.Outcome.Message()
	}
	return reply, nil
}
