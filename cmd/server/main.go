package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"undercover/backend/internal/app"
	"undercover/backend/internal/config"
	"undercover/backend/internal/logging"

	// Swagger imports
	_ "undercover/backend/docs"
)

func init() {
	config.LoadConfig()
}

// @title           Undercover API
// @version         1.0
// @description     Webhook and admin API for the "who is the undercover" party game.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}
	defer a.Close()

	go a.RunMaintenance(ctx, time.Minute)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           a.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.Infof("Server is running on %s", cfg.ServerAddr)
		logrus.Infof("Swagger UI is available at http://localhost%s/swagger/index.html", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("Server error: %v", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutdown signal received, shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
	logrus.Info("Server exiting")
}
