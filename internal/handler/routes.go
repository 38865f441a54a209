package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	"github.com/sirupsen/logrus"
	ginSwagger "github.com/swaggo/gin-swagger"

	"undercover/backend/internal/auth"
	"undercover/backend/internal/middleware"
	"undercover/backend/internal/words"
)

// Dependencies wires the HTTP layer.
type Dependencies struct {
	Replier Replier
	Rooms   RoomFinder
	Pool    *words.Pool
	Limiter *middleware.KeyedLimiter

	WechatToken       string
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	RequestTimeout    time.Duration
	EnableSwagger     bool
	// EnableCommandAPI mounts POST /api/v1/admin/commands. It lets an admin
	// act as any player, so it also requires JWTSecret.
	EnableCommandAPI bool
}

// NewEngine builds the gin engine. The webhook rejects every request while
// WechatToken is empty, and the admin API is not mounted without JWTSecret.
func NewEngine(d Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	var limiter Limiter
	if d.Limiter != nil {
		limiter = d.Limiter
	}

	if d.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/ping", Ping)
	router.GET("/health", Health)

	if d.WechatToken == "" {
		logrus.Warn("WECHAT_TOKEN not set, webhook requests will be rejected")
	}
	wechatHandler := NewWechatHandler(d.Replier, limiter, d.WechatToken, d.RequestTimeout)
	router.GET("/wechat", wechatHandler.Verify)
	router.POST("/wechat", wechatHandler.Receive)

	apiV1 := router.Group("/api/v1")
	{
		authHandler := NewAuthHandler(d.AdminUsername, d.AdminPasswordHash, d.JWTSecret, 0)
		authRoutes := apiV1.Group("/auth")
		if d.Limiter != nil {
			authRoutes.Use(middleware.RateLimit(d.Limiter, func(c *gin.Context) string {
				return "login:" + c.ClientIP()
			}))
		}
		{
			authRoutes.POST("/login", authHandler.Login)
		}

		if d.JWTSecret == "" {
			logrus.Warn("JWT_SECRET not set, admin API is disabled")
			return router
		}

		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(d.JWTSecret), auth.AdminMiddleware())
		{
			wordHandler := NewWordHandler(d.Pool)
			wordsGroup := adminRoutes.Group("/words")
			{
				wordsGroup.GET("", wordHandler.ListWords)
				wordsGroup.POST("", wordHandler.CreateWord)
				wordsGroup.DELETE("", wordHandler.DeleteWord)
			}

			roomHandler := NewRoomHandler(d.Rooms, d.RequestTimeout)
			adminRoutes.GET("/rooms/:id", roomHandler.GetRoomByID)

			if d.EnableCommandAPI {
				commandHandler := NewCommandHandler(d.Replier, limiter, d.RequestTimeout)
				adminRoutes.POST("/commands", commandHandler.Handle)
			}
		}
	}

	return router
}
