package models

import (
	"slices"
	"time"

	"undercover/backend/internal/fsm"
)

// WordPair is one civilian/undercover term pair.
type WordPair struct {
	Civilian   string `json:"civilian"`
	Undercover string `json:"undercover"`
}

// Room represents one game session.
//
// Players keeps join order for the lifetime of the room; the 1-based position
// of a player is its vote index. Elimination never removes a player, it only
// appends to Eliminated.
type Room struct {
	ID           string    `json:"room_id"`
	Creator      string    `json:"creator"`
	Players      []string  `json:"players"`
	Status       fsm.State `json:"status"`
	Words        *WordPair `json:"words"`
	Undercovers  []string  `json:"undercovers"`
	CurrentRound int       `json:"current_round"`
	Eliminated   []string  `json:"eliminated"`
	CreatedAt    time.Time `json:"created_at"`
	LastActive   time.Time `json:"last_active"`
}

// NewRoom creates a waiting room owned by creator.
func NewRoom(id, creator string, now time.Time) *Room {
	return &Room{
		ID:           id,
		Creator:      creator,
		Players:      []string{creator},
		Status:       fsm.Waiting,
		Undercovers:  []string{},
		CurrentRound: 1,
		Eliminated:   []string{},
		CreatedAt:    now,
		LastActive:   now,
	}
}

func (r *Room) IsCreator(userID string) bool {
	return r.Creator == userID
}

func (r *Room) IsPlayer(userID string) bool {
	return slices.Contains(r.Players, userID)
}

func (r *Room) IsEliminated(userID string) bool {
	return slices.Contains(r.Eliminated, userID)
}

func (r *Room) IsUndercover(userID string) bool {
	return slices.Contains(r.Undercovers, userID)
}

func (r *Room) PlayerCount() int {
	return len(r.Players)
}

// IndexOf returns the 1-based vote index of userID, or 0 if absent.
func (r *Room) IndexOf(userID string) int {
	return slices.Index(r.Players, userID) + 1
}

// PlayerAt returns the player at 1-based index.
func (r *Room) PlayerAt(index int) (string, bool) {
	if index < 1 || index > len(r.Players) {
		return "", false
	}
	return r.Players[index-1], true
}

// Remaining lists players not yet eliminated, in join order.
func (r *Room) Remaining() []string {
	remaining := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		if !r.IsEliminated(p) {
			remaining = append(remaining, p)
		}
	}
	return remaining
}

// WordFor returns the term assigned to userID, or "" before words are dealt.
func (r *Room) WordFor(userID string) string {
	if r.Words == nil {
		return ""
	}
	if r.IsUndercover(userID) {
		return r.Words.Undercover
	}
	return r.Words.Civilian
}

// Touch refreshes LastActive.
func (r *Room) Touch(now time.Time) {
	r.LastActive = now
}
