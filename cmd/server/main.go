package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/senseiyukisan/sports-analytics/internal/api"
	"github.com/senseiyukisan/sports-analytics/internal/dataset"
	"github.com/senseiyukisan/sports-analytics/pkg/config"
	"github.com/senseiyukisan/sports-analytics/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	log := logger.WithService("stats-api")
	log.WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
		"data_dir":    cfg.OutputDir,
	}).Info("Starting stats API")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	data, err := dataset.LoadEnriched(cfg.OutputDir)
	if err != nil {
		log.Fatalf("Failed to load enriched tables (run preprocess first): %v", err)
	}
	log.WithFields(logrus.Fields{
		"players": len(data.Players),
		"clubs":   len(data.Clubs),
		"games":   len(data.Games),
	}).Info("Loaded enriched tables")

	router := api.NewRouter(cfg, data, structuredLogger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Stats API started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down stats API...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Stats API forced to shutdown: %v", err)
	}

	log.Info("Stats API exited")
}
