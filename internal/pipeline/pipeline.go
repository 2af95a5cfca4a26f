// Package pipeline turns the raw season export into the enriched tables.
//
// Stages run in a fixed order: league filter, player enrichment, club
// aggregation, appearance weighting and game enrichment. Each stage reads
// the frames of the previous one and returns new frames. Lookups resolve
// to ok, a reported default, or a hard failure; hard failures are collected
// across the whole run and abort it before any table is written.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/senseiyukisan/sports-analytics/internal/dataset"
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/pkg/config"
	"github.com/senseiyukisan/sports-analytics/pkg/logger"
)

type Options struct {
	InputDir          string
	OutputDir         string
	AsOf              time.Time
	Leagues           []string
	MarketValueSource string
}

// OptionsFromConfig maps the process configuration onto pipeline options
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	asOf, err := cfg.AsOf()
	if err != nil {
		return Options{}, err
	}
	return Options{
		InputDir:          cfg.InputDir,
		OutputDir:         cfg.OutputDir,
		AsOf:              asOf,
		Leagues:           cfg.Leagues,
		MarketValueSource: cfg.MarketValueSource,
	}, nil
}

type Pipeline struct {
	opts   Options
	values ValueResolver
	now    func() time.Time
	newID  func() string
}

func New(opts Options, values ValueResolver) *Pipeline {
	if len(opts.Leagues) == 0 {
		opts.Leagues = models.DefaultLeagues
	}
	return &Pipeline{
		opts:   opts,
		values: values,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Run executes every stage and writes the outputs. The report is returned
// even when the run fails; it is written to disk unless the context was cancelled.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	rep := NewReport(p.newID())
	rep.StartedAt = p.now().UTC()
	rep.AsOf = p.opts.AsOf.Format(config.AsOfLayout)
	rep.Leagues = p.opts.Leagues
	rep.MarketValueSource = p.opts.MarketValueSource

	log := logger.WithRunContext(rep.RunID)
	log.WithFields(logrus.Fields{
		"input_dir":  p.opts.InputDir,
		"output_dir": p.opts.OutputDir,
		"as_of":      rep.AsOf,
		"leagues":    p.opts.Leagues,
	}).Info("Starting preprocessing run")

	out, err := p.execute(ctx, rep)
	if ctx.Err() != nil {
		log.Warn("Run cancelled, no output written")
		return rep, ctx.Err()
	}
	if err == nil {
		if err = rep.Err(); err != nil {
			err = fmt.Errorf("run aborted with %d hard failures: %w", rep.Summary.Failed, err)
		}
	}
	if err == nil {
		err = p.timed(rep, "write", func() (int, error) {
			return out.Players.Len(), WriteOutputs(p.opts.OutputDir, out)
		})
	}

	rep.FinishedAt = p.now().UTC()
	if err != nil {
		rep.Error = err.Error()
	}
	if werr := rep.WriteFile(filepath.Join(p.opts.OutputDir, dataset.ReportFile)); werr != nil {
		log.WithError(werr).Error("Failed to write run report")
		if err == nil {
			err = werr
		}
	}

	if err != nil {
		log.WithError(err).Error("Preprocessing run failed")
		return rep, err
	}
	log.WithFields(logrus.Fields{
		"dropped":   rep.Summary.Dropped,
		"defaulted": rep.Summary.Defaulted,
		"anomalies": rep.Summary.Anomalies,
	}).Info("Preprocessing run finished")
	return rep, nil
}

func (p *Pipeline) execute(ctx context.Context, rep *Report) (*Output, error) {
	var raw *dataset.Raw
	if err := p.timed(rep, "load", func() (n int, err error) {
		raw, err = dataset.LoadRaw(p.opts.InputDir)
		if err != nil {
			return 0, err
		}
		return raw.Players.Len() + raw.Clubs.Len() + raw.Appearances.Len() + raw.Games.Len(), nil
	}); err != nil {
		return nil, err
	}

	var ds *Dataset
	p.timed(rep, stageFilter, func() (int, error) {
		ds = FilterLeagues(raw, models.NewLeagueSet(p.opts.Leagues), rep)
		return ds.Players.Len(), nil
	})

	clubs := make(map[int64]models.Club, ds.Clubs.Len())
	for _, c := range ds.Clubs.Records {
		clubs[c.ID] = c
	}
	games := make(map[int64]models.Game, ds.Games.Len())
	for _, g := range ds.Games.Records {
		games[g.ID] = g
	}

	out := &Output{}
	if err := p.timed(rep, stagePlayers, func() (n int, err error) {
		in := PlayerInputs{
			Clubs:   clubs,
			Stats:   AggregateStats(ds.Appearances.Records, rep),
			Results: ResolveResults(ds.Appearances.Records, games, rep),
			Values:  p.values,
			AsOf:    p.opts.AsOf,
		}
		out.Players, err = EnrichPlayers(ctx, ds.Players, in, rep)
		return out.Players.Len(), err
	}); err != nil {
		return nil, err
	}

	var clubValues map[int64]float64
	p.timed(rep, stageClubs, func() (int, error) {
		out.Clubs, clubValues = AggregateClubValues(ds.Clubs, out.Players.Records, rep)
		return out.Clubs.Len(), nil
	})

	playerValues := make(map[int64]float64, out.Players.Len())
	for _, pl := range out.Players.Records {
		playerValues[pl.ID] = pl.MarketValue
	}
	var weighted map[SideKey]float64
	p.timed(rep, stageAppearances, func() (int, error) {
		out.Appearances, weighted = WeightAppearances(ds.Appearances, playerValues, rep)
		return out.Appearances.Len(), nil
	})

	p.timed(rep, stageGames, func() (int, error) {
		out.Games = EnrichGames(ds.Games, GameInputs{
			Clubs:      clubs,
			ClubValues: clubValues,
			Weighted:   weighted,
		}, rep)
		return out.Games.Len(), nil
	})
	return out, nil
}

// timed runs one stage, logging its start and finish and recording its duration
func (p *Pipeline) timed(rep *Report, stage string, fn func() (int, error)) error {
	log := logger.WithStage(rep.RunID, stage)
	log.Debug("Stage started")

	start := time.Now()
	rows, err := fn()
	elapsed := time.Since(start)
	rep.Stages = append(rep.Stages, StageTiming{Stage: stage, DurationMS: elapsed.Milliseconds(), Rows: rows})

	if err != nil {
		log.WithError(err).Error("Stage failed")
		return err
	}
	log.WithFields(logrus.Fields{
		"rows":        rows,
		"duration_ms": elapsed.Milliseconds(),
	}).Info("Stage finished")
	return nil
}
