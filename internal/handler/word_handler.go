package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"undercover/backend/internal/models"
	"undercover/backend/internal/words"
)

// WordPairInput is one civilian/undercover pair.
type WordPairInput struct {
	Civilian   string `json:"civilian" binding:"required" example:"apple"`
	Undercover string `json:"undercover" binding:"required" example:"banana"`
}

func (in WordPairInput) pair() models.WordPair {
	return models.WordPair{
		Civilian:   strings.TrimSpace(in.Civilian),
		Undercover: strings.TrimSpace(in.Undercover),
	}
}

// WordHandler manages the word pool.
type WordHandler struct {
	pool *words.Pool
}

func NewWordHandler(pool *words.Pool) *WordHandler {
	return &WordHandler{pool: pool}
}

// ListWords godoc
// @Summary      List word pairs
// @Description  Retrieves the word pool, paginated.
// @Tags         admin-words
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[models.WordPair]
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /api/v1/admin/words [get]
func (h *WordHandler) ListWords(c *gin.Context) {
	page, limit := pageParams(c)
	c.JSON(http.StatusOK, Paginate(h.pool.List(), page, limit))
}

// CreateWord godoc
// @Summary      Add a word pair
// @Tags         admin-words
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body WordPairInput true "Word pair"
// @Success      201  {object}  models.WordPair
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Pair already exists"
// @Router       /api/v1/admin/words [post]
func (h *WordHandler) CreateWord(c *gin.Context) {
	var input WordPairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair := input.pair()
	if err := h.pool.Add(pair); err != nil {
		switch {
		case errors.Is(err, words.ErrDuplicatePair):
			c.JSON(http.StatusConflict, gin.H{"error": "Word pair already exists"})
		case errors.Is(err, words.ErrInvalidPair):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Words must be non-empty and different"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add word pair"})
		}
		return
	}

	logrus.WithFields(logrus.Fields{"civilian": pair.Civilian, "undercover": pair.Undercover}).Info("Word pair added")
	c.JSON(http.StatusCreated, pair)
}

// DeleteWord godoc
// @Summary      Remove a word pair
// @Tags         admin-words
// @Accept       json
// @Security     BearerAuth
// @Param        input body WordPairInput true "Word pair"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Pair not found"
// @Router       /api/v1/admin/words [delete]
func (h *WordHandler) DeleteWord(c *gin.Context) {
	var input WordPairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.pool.Remove(input.pair()); err != nil {
		if errors.Is(err, words.ErrPairNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Word pair not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove word pair"})
		return
	}

	c.Status(http.StatusNoContent)
}
