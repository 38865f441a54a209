// Command worker delivers queued player pushes when NOTIFY_MODE=queue.
package main

import (
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"undercover/backend/internal/config"
	"undercover/backend/internal/logging"
	"undercover/backend/internal/wechat"
	"undercover/backend/internal/worker"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if !cfg.NotifierEnabled() {
		logrus.Fatal("WECHAT_APP_ID and WECHAT_APP_SECRET are required to run the worker")
	}

	opt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Invalid REDIS_URL: %v", err)
	}

	client := wechat.NewClient(cfg.WechatAppID, cfg.WechatAppSecret, cfg.WechatAPIBase)
	// Run handles SIGINT/SIGTERM itself.
	if err := worker.NewWorkerServer(opt, client, cfg.NotifyWorkers).Run(); err != nil {
		logrus.Fatalf("Worker server failed: %v", err)
	}
}
