package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"undercover/backend/internal/fsm"
	"undercover/backend/internal/models"
	"undercover/backend/internal/service"
)

// RoomFinder loads a room by id. *service.GameService satisfies it.
type RoomFinder interface {
	Room(ctx context.Context, roomID string) (*models.Room, error)
}

// region --- DTOs ---

// RoomResponse is the admin view of a room, secrets included.
type RoomResponse struct {
	ID           string           `json:"room_id" example:"1234"`
	Creator      string           `json:"creator"`
	Status       fsm.State        `json:"status" example:"playing"`
	Players      []string         `json:"players"`
	Undercovers  []string         `json:"undercovers"`
	Eliminated   []string         `json:"eliminated"`
	Words        *models.WordPair `json:"words,omitempty"`
	CurrentRound int              `json:"current_round" example:"1"`
	CreatedAt    time.Time        `json:"created_at"`
	LastActive   time.Time        `json:"last_active"`
}

func newRoomResponse(room *models.Room) RoomResponse {
	return RoomResponse{
		ID:           room.ID,
		Creator:      room.Creator,
		Status:       room.Status,
		Players:      room.Players,
		Undercovers:  room.Undercovers,
		Eliminated:   room.Eliminated,
		Words:        room.Words,
		CurrentRound: room.CurrentRound,
		CreatedAt:    room.CreatedAt,
		LastActive:   room.LastActive,
	}
}

// endregion

// RoomHandler lets admins inspect live rooms.
type RoomHandler struct {
	rooms   RoomFinder
	timeout time.Duration
}

func NewRoomHandler(rooms RoomFinder, timeout time.Duration) *RoomHandler {
	return &RoomHandler{rooms: rooms, timeout: timeout}
}

// GetRoomByID godoc
// @Summary      Inspect a room
// @Description  Returns the full room record, including undercovers and words.
// @Tags         admin-rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Room ID"
// @Success      200  {object}  RoomResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Room not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/admin/rooms/{id} [get]
func (h *RoomHandler) GetRoomByID(c *gin.Context) {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	room, err := h.rooms.Room(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		logrus.WithError(err).WithField("room_id", c.Param("id")).Error("Failed to load room")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load room"})
		return
	}

	c.JSON(http.StatusOK, newRoomResponse(room))
}
