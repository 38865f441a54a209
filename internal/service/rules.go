package service

import (
	"undercover/backend/internal/messages"
	"undercover/backend/internal/models"
)

// Outcome is the result of evaluating a room after an elimination.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeCiviliansWin
	OutcomeUndercoversWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCiviliansWin:
		return "civilians_win"
	case OutcomeUndercoversWin:
		return "undercovers_win"
	default:
		return "continue"
	}
}

// Finished reports whether the outcome ends the game.
func (o Outcome) Finished() bool {
	return o != OutcomeContinue
}

// Message is the announcement sent to players.
func (o Outcome) Message() string {
	switch o {
	case OutcomeCiviliansWin:
		return messages.CiviliansWin
	case OutcomeUndercoversWin:
		return messages.UndercoversWin
	default:
		return ""
	}
}

// minRemaining is the smallest table that can keep playing.
const minRemaining = 3

// UndercoverCount maps a player count to the number of undercovers:
// 3-5 -> 1, 6-8 -> 2, 9-12 -> 3. Any other count is invalid.
func UndercoverCount(players int) (int, error) {
	switch {
	case players >= 3 && players <= 5:
		return 1, nil
	case players >= 6 && players <= 8:
		return 2, nil
	case players >= 9 && players <= 12:
		return 3, nil
	default:
		return 0, ErrInvalidPlayerCount
	}
}

// Evaluate checks the win conditions in precedence order:
// all undercovers out, fewer than three left, undercovers at parity or above.
func Evaluate(room *models.Room) Outcome {
	allOut := true
	for _, u := range room.Undercovers {
		if !room.IsEliminated(u) {
			allOut = false
			break
		}
	}
	if allOut {
		return OutcomeCiviliansWin
	}

	remaining := room.Remaining()
	if len(remaining) < minRemaining {
		return OutcomeUndercoversWin
	}

	undercovers := 0
	for _, p := range remaining {
		if room.IsUndercover(p) {
			undercovers++
		}
	}
	if undercovers >= len(remaining)-undercovers {
		return OutcomeUndercoversWin
	}
	return OutcomeContinue
}
