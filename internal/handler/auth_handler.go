package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"undercover/backend/pkg/jwt"
)

// region --- DTOs ---

// LoginInput defines the structure for admin login.
type LoginInput struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// endregion

// AuthHandler issues admin tokens.
type AuthHandler struct {
	username     string
	passwordHash string
	secret       string
	ttl          time.Duration
}

// NewAuthHandler creates the login handler. Login is disabled while the
// password hash or the secret is empty.
func NewAuthHandler(username, passwordHash, secret string, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = jwt.DefaultTTL
	}
	return &AuthHandler{username: username, passwordHash: passwordHash, secret: secret, ttl: ttl}
}

// Login godoc
// @Summary      Log in as admin
// @Description  Checks the admin credentials and returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      503  {object}  ErrorResponse "Admin login disabled"
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.passwordHash == "" || h.secret == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin login is disabled"})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(h.username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(input.Password))
	if !userOK || passErr != nil {
		logrus.WithField("username", input.Username).Warn("Admin login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	expiresAt := time.Now().Add(h.ttl).UTC()
	token, err := jwt.GenerateToken(h.secret, h.username, jwt.RoleAdmin, h.ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}
