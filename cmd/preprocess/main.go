package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/senseiyukisan/sports-analytics/internal/dataset"
	"github.com/senseiyukisan/sports-analytics/internal/marketvalue"
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/pipeline"
	"github.com/senseiyukisan/sports-analytics/pkg/config"
	"github.com/senseiyukisan/sports-analytics/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		logrus.Fatal("Usage: preprocess [run|values]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command := os.Args[1]; command {
	case "run":
		if err := run(ctx, cfg, structuredLogger); err != nil {
			stop()
			logrus.Fatalf("Preprocessing failed: %v", err)
		}
		structuredLogger.Info("Preprocessing completed successfully")

	case "values":
		if err := collectValues(ctx, cfg, structuredLogger); err != nil {
			stop()
			logrus.Fatalf("Market value collection failed: %v", err)
		}
		structuredLogger.Info("Market value snapshot written")

	default:
		logrus.Fatalf("Unknown command: %s", command)
	}
}

// run executes the pipeline with the configured market value source
func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	opts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	source, closeSource, err := marketvalue.NewSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	rep, err := pipeline.New(opts, marketvalue.NewResolver(source)).Run(ctx)
	if rep != nil {
		log.WithFields(logrus.Fields{
			"run_id":    rep.RunID,
			"dropped":   rep.Summary.Dropped,
			"defaulted": rep.Summary.Defaulted,
			"anomalies": rep.Summary.Anomalies,
			"failed":    rep.Summary.Failed,
		}).Info("Run summary")
	}
	return err
}

// collectValues fetches a token for every in-league player and writes the snapshot file
func collectValues(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	if cfg.MarketValueSource == "file" {
		// the snapshot is the output here, so read from the remote source
		cfg.MarketValueSource = "transfermarkt"
	}
	source, closeSource, err := marketvalue.NewSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	raw, err := dataset.LoadRaw(cfg.InputDir)
	if err != nil {
		return err
	}
	ds := pipeline.FilterLeagues(raw, models.NewLeagueSet(cfg.Leagues), pipeline.NewReport(uuid.NewString()))

	tokens, missing, err := marketvalue.CollectTokens(ctx, source, ds.Players.Records, log)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"source":  source.Name(),
		"found":   len(tokens),
		"missing": missing,
	}).Info("Collected market value tokens")

	return marketvalue.WriteSnapshot(cfg.MarketValuesFile, tokens)
}
