package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"undercover/backend/internal/messages"
)

// region --- DTOs ---

// CommandInput is one player message sent through the JSON API.
type CommandInput struct {
	UserID string `json:"user_id" binding:"required" example:"o6_bmjrPTlm6_2sgVt7hMZOPfL2M"`
	Text   string `json:"text" example:"join 1234"`
}

// CommandResponse carries the reply the player would see.
type CommandResponse struct {
	Reply string `json:"reply" example:"Joined room 1234! Players in room: 2"`
}

// endregion

// CommandHandler lets an admin drive the game as any player, bypassing the
// platform identity. Mounted only behind the admin token.
type CommandHandler struct {
	replier Replier
	limiter Limiter
	timeout time.Duration
}

// NewCommandHandler creates the handler. limiter may be nil.
func NewCommandHandler(replier Replier, limiter Limiter, timeout time.Duration) *CommandHandler {
	if replier == nil {
		panic("replier cannot be nil for CommandHandler")
	}
	return &CommandHandler{replier: replier, limiter: limiter, timeout: timeout}
}

// Handle godoc
// @Summary      Send a command
// @Description  Runs one text command as the given player and returns the reply, with status and word appended.
// @Tags         admin-commands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CommandInput true "Command"
// @Success      200  {object}  CommandResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      429  {object}  ErrorResponse
// @Router       /api/v1/admin/commands [post]
func (h *CommandHandler) Handle(c *gin.Context) {
	var input CommandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.limiter != nil && !h.limiter.Allow(input.UserID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": messages.RateLimited})
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()
	c.JSON(http.StatusOK, CommandResponse{Reply: h.replier.Handle(ctx, input.UserID, input.Text)})
}
