package service

import (
	"errors"

	"undercover/backend/internal/messages"
)

// Code is a machine-readable domain error code.
type Code string

const (
	CodeRoomNotFound        Code = "ROOM_NOT_FOUND"
	CodeRoomAlreadyStarted  Code = "ROOM_ALREADY_STARTED"
	CodeAlreadyInRoom       Code = "ROOM_ALREADY_IN"
	CodeRoomFull            Code = "ROOM_FULL"
	CodeNotOwner            Code = "ROOM_NOT_OWNER"
	CodeInsufficientPlayers Code = "GAME_INSUFFICIENT_PLAYERS"
	CodeInvalidPlayerCount  Code = "GAME_INVALID_PLAYER_COUNT"
	CodeGameAlreadyStarted  Code = "GAME_ALREADY_STARTED"
	CodeGameEnded           Code = "GAME_ENDED"
	CodeGameNotStarted      Code = "GAME_NOT_STARTED"
	CodeGameNotPlaying      Code = "GAME_NOT_PLAYING"
	CodeInvalidIndex        Code = "GAME_INVALID_INDEX"
	CodeAlreadyEliminated   Code = "GAME_ALREADY_ELIMINATED"
	CodePlayerEliminated    Code = "GAME_PLAYER_ELIMINATED"
	CodeNotInRoom           Code = "USER_NOT_IN_ROOM"
	CodeNotInCurrentRoom    Code = "USER_NOT_IN_CURRENT_ROOM"
)

// Error is an expected, user-facing outcome. Its Message is safe to show
// to players as is.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code, so parameterized messages still
// compare equal to the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrRoomNotFound        = &Error{CodeRoomNotFound, messages.RoomNotFound}
	ErrRoomAlreadyStarted  = &Error{CodeRoomAlreadyStarted, messages.RoomAlreadyStarted}
	ErrAlreadyInRoom       = &Error{CodeAlreadyInRoom, messages.RoomAlreadyIn}
	ErrRoomFull            = &Error{CodeRoomFull, messages.RoomFull}
	ErrNotOwnerStart       = &Error{CodeNotOwner, messages.NotOwnerStart}
	ErrNotOwnerVote        = &Error{CodeNotOwner, messages.NotOwnerVote}
	ErrInsufficientPlayers = &Error{CodeInsufficientPlayers, messages.InsufficientPlayers(3)}
	ErrInvalidPlayerCount  = &Error{CodeInvalidPlayerCount, messages.InvalidPlayerCount}
	ErrGameAlreadyStarted  = &Error{CodeGameAlreadyStarted, messages.GameAlreadyStarted}
	ErrGameEnded           = &Error{CodeGameEnded, messages.GameEnded}
	ErrGameNotStarted      = &Error{CodeGameNotStarted, messages.GameNotStarted}
	ErrGameNotPlaying      = &Error{CodeGameNotPlaying, messages.GameNotPlaying}
	ErrInvalidIndex        = &Error{CodeInvalidIndex, messages.InvalidIndex(1)}
	ErrAlreadyEliminated   = &Error{CodeAlreadyEliminated, messages.PlayerAlreadyGone}
	ErrPlayerEliminated    = &Error{CodePlayerEliminated, messages.YouAreEliminated}
	ErrNotInRoom           = &Error{CodeNotInRoom, messages.NotInRoom}
	ErrNotInCurrentRoom    = &Error{CodeNotInCurrentRoom, messages.NotInCurrentRoom}
)

func errInsufficientPlayers(min int) error {
	return &Error{CodeInsufficientPlayers, messages.InsufficientPlayers(min)}
}

func errInvalidIndex(max int) error {
	return &Error{CodeInvalidIndex, messages.InvalidIndex(max)}
}

// AsDomain extracts the domain error from err, if any.
func AsDomain(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
