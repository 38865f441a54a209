// Package app assembles the server from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"undercover/backend/internal/command"
	"undercover/backend/internal/config"
	"undercover/backend/internal/database"
	"undercover/backend/internal/handler"
	"undercover/backend/internal/middleware"
	"undercover/backend/internal/notify"
	"undercover/backend/internal/repository"
	"undercover/backend/internal/service"
	"undercover/backend/internal/wechat"
	"undercover/backend/internal/worker"
	"undercover/backend/internal/words"
)

// redisKeyPrefix namespaces game keys in a shared Redis.
const redisKeyPrefix = "uc:"

// limiterIdle is how long an unused per-player bucket is kept.
const limiterIdle = 10 * time.Minute

// App holds every long-lived component of the server.
type App struct {
	Config  *config.Config
	Game    *service.GameService
	Router  *command.Router
	Pool    *words.Pool
	Limiter *middleware.KeyedLimiter
	Engine  *gin.Engine

	sweep   func(ctx context.Context) (int64, error)
	closers []func() error
}

// New wires the application. Call Close when done.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	backend, err := a.openBackend(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := loadPool(cfg.WordsFile)
	if err != nil {
		return nil, err
	}
	a.Pool = pool

	push, err := a.buildNotifier()
	if err != nil {
		return nil, err
	}

	a.Game = service.NewGameService(
		repository.NewRoomRepository(backend, cfg.RoomTTL),
		repository.NewUserRepository(backend),
		pool,
		push,
		service.WithPlayerLimits(cfg.MinPlayers, cfg.MaxPlayers),
	)
	a.Router = command.NewRouter(a.Game)

	if cfg.RateLimitRPS > 0 {
		a.Limiter = middleware.NewKeyedLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, limiterIdle)
	}

	a.Engine = handler.NewEngine(handler.Dependencies{
		Replier:           a.Router,
		Rooms:             a.Game,
		Pool:              pool,
		Limiter:           a.Limiter,
		WechatToken:       cfg.WechatToken,
		JWTSecret:         cfg.JWTSecret,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
		RequestTimeout:    cfg.StoreTimeout,
		EnableSwagger:     true,
		EnableCommandAPI:  cfg.CommandAPIEnabled,
	})
	return a, nil
}

func (a *App) openBackend(ctx context.Context) (repository.Backend, error) {
	cfg := a.Config
	switch cfg.StoreDriver {
	case "", config.StoreMemory:
		mem := repository.NewMemoryBackend()
		a.sweep = func(context.Context) (int64, error) { return int64(mem.Sweep()), nil }
		logrus.Info("Using in-memory store")
		return mem, nil

	case config.StoreRedis:
		client, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return repository.NewRedisBackend(client, redisKeyPrefix), nil

	case config.StorePostgres:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		a.closers = append(a.closers, sqlDB.Close)
		gb := repository.NewGormBackend(db)
		a.sweep = gb.Purge
		return gb, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func loadPool(path string) (*words.Pool, error) {
	if path == "" {
		return words.NewPool(words.DefaultPairs, nil), nil
	}
	pairs, err := words.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("word file %s has no pairs", path)
	}
	logrus.WithFields(logrus.Fields{"file": path, "pairs": len(pairs)}).Info("Word list loaded")
	return words.NewPool(pairs, nil), nil
}

// buildNotifier picks push delivery from NOTIFY_MODE. Without platform
// credentials pushes are disabled.
func (a *App) buildNotifier() (notify.Notifier, error) {
	cfg := a.Config
	if !cfg.NotifierEnabled() {
		logrus.Warn("WeChat credentials not set, player pushes are disabled")
		return notify.Nop{}, nil
	}
	client := wechat.NewClient(cfg.WechatAppID, cfg.WechatAppSecret, cfg.WechatAPIBase)

	switch cfg.NotifyMode {
	case "", config.NotifyInline:
		d := notify.NewDispatcher(client, cfg.NotifyWorkers, cfg.NotifyBuffer)
		d.Start()
		a.closers = append(a.closers, func() error { d.Stop(); return nil })
		return d, nil

	case config.NotifyQueue:
		opt, err := asynq.ParseRedisURI(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("asynq: parse redis url: %w", err)
		}
		asynqClient := asynq.NewClient(opt)
		a.closers = append(a.closers, asynqClient.Close)
		logrus.Info("Asynq client initialized")
		return worker.NewQueueNotifier(asynqClient, client), nil

	default:
		return nil, fmt.Errorf("unknown NOTIFY_MODE %q", cfg.NotifyMode)
	}
}

// RunMaintenance periodically drops expired records and idle rate-limit
// buckets until ctx is cancelled.
func (a *App) RunMaintenance(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.maintain(ctx)
		}
	}
}

func (a *App) maintain(ctx context.Context) {
	if a.sweep != nil {
		n, err := a.sweep(ctx)
		if err != nil {
			logrus.WithError(err).Warn("Failed to purge expired records")
		} else if n > 0 {
			logrus.WithField("purged", n).Debug("Expired records purged")
		}
	}
	if a.Limiter != nil {
		a.Limiter.Cleanup()
	}
}

// Close releases connections in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logrus.WithError(err).Warn("Error during shutdown")
		}
	}
	a.closers = nil
}
