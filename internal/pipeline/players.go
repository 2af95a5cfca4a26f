package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/outcome"
	"github.com/senseiyukisan/sports-analytics/internal/table"
	"github.com/senseiyukisan/sports-analytics/pkg/logger"
)

const (
	stagePlayers = "players"
	stageResults = "results"

	goalkeeper = "Goalkeeper"
)

// ValueResolver returns a player's market value, or 0 and the reason it could not be resolved
type ValueResolver interface {
	Resolve(ctx context.Context, player models.Player) (float64, error)
}

// Record is a player's win/draw/loss tally
type Record struct {
	Wins   int
	Draws  int
	Losses int
}

type appearanceKey struct {
	playerID int64
	gameID   int64
}

// AggregateStats sums appearance counters per player. Every appearance row
// counts as a game; a second row for the same (player, game) is reported.
func AggregateStats(apps []models.Appearance, rep *Report) map[int64]models.PlayerStats {
	stats := make(map[int64]models.PlayerStats)
	seen := make(map[appearanceKey]struct{}, len(apps))
	for _, a := range apps {
		s := stats[a.PlayerID]
		s.Games++
		s.MinutesPlayed += a.MinutesPlayed
		s.Goals += a.Goals
		s.Assists += a.Assists
		s.YellowCards += a.YellowCards
		s.RedCards += a.RedCards
		stats[a.PlayerID] = s

		key := appearanceKey{playerID: a.PlayerID, gameID: a.GameID}
		if _, dup := seen[key]; dup {
			rep.record(IssueAnomaly, &LookupError{Stage: stagePlayers, GameID: a.GameID, PlayerID: a.PlayerID, Err: ErrDuplicateAppearance})
			continue
		}
		seen[key] = struct{}{}
	}
	return stats
}

// ResolveResults tallies wins, draws and losses per player from the side
// their club occupied in each game. Results from every club a player
// appeared for are added together. Games without a result are reported
// once and tally nothing.
func ResolveResults(apps []models.Appearance, games map[int64]models.Game, rep *Report) map[int64]Record {
	records := make(map[int64]Record)
	unplayed := make(map[int64]struct{})
	for _, a := range apps {
		g, ok := games[a.GameID]
		if !ok {
			rep.record(IssueFailed, &LookupError{Stage: stageResults, GameID: a.GameID, ClubID: a.PlayerClubID, PlayerID: a.PlayerID, Err: ErrMissingGame})
			continue
		}
		side, ok := g.Side(a.PlayerClubID)
		if !ok {
			rep.record(IssueAnomaly, &LookupError{Stage: stageResults, GameID: a.GameID, ClubID: a.PlayerClubID, PlayerID: a.PlayerID, Err: ErrSideMismatch})
			continue
		}
		if g.Unplayed {
			if _, seen := unplayed[g.ID]; !seen {
				unplayed[g.ID] = struct{}{}
				rep.record(IssueAnomaly, &LookupError{Stage: stageResults, GameID: g.ID, Err: ErrMissingResult})
			}
			continue
		}

		played := outcome.Classify(g.HomeClubGoals, g.AwayClubGoals)
		result := played.ForFirst()
		if side == models.SideAway {
			result = played.ForSecond()
		}

		rec := records[a.PlayerID]
		switch result {
		case outcome.Win:
			rec.Wins++
		case outcome.Loss:
			rec.Losses++
		default:
			rec.Draws++
		}
		records[a.PlayerID] = rec
	}
	return records
}

// PlayerInputs are the lookups EnrichPlayers joins against
type PlayerInputs struct {
	Clubs   map[int64]models.Club
	Stats   map[int64]models.PlayerStats
	Results map[int64]Record
	Values  ValueResolver
	AsOf    time.Time
}

// EnrichPlayers derives age, club name, market value and season stats for every player.
// Only a cancelled context stops it early.
func EnrichPlayers(ctx context.Context, players table.Frame[models.Player], in PlayerInputs, rep *Report) (table.Frame[models.Player], error) {
	out := make([]models.Player, len(players.Records))
	for i, p := range players.Records {
		if p.Position == goalkeeper {
			p.SubPosition = goalkeeper
		}
		p.Age = Age(p.DateOfBirth, in.AsOf)

		name := clubName(in.Clubs, p)
		if name.Status == StatusFailed {
			rep.record(IssueFailed, name.Err)
		}
		p.ClubName = name.Value

		value := marketValue(ctx, in.Values, p)
		if err := ctx.Err(); err != nil {
			return table.Frame[models.Player]{}, err
		}
		if value.Status == StatusDefaulted {
			rep.record(IssueDefaulted, value.Err)
		}
		p.MarketValue = value.Value

		stats := in.Stats[p.ID]
		rec := in.Results[p.ID]
		stats.Wins, stats.Draws, stats.Losses = rec.Wins, rec.Draws, rec.Losses
		p.Stats = stats

		out[i] = p
		if (i+1)%500 == 0 {
			logger.WithStage(rep.RunID, stagePlayers).Infof("Enriched %d/%d players", i+1, len(out))
		}
	}
	return table.Frame[models.Player]{Table: players.Table, Records: out}, nil
}

func clubName(clubs map[int64]models.Club, p models.Player) Resolution[string] {
	c, ok := clubs[p.ClubID]
	if !ok {
		return failed[string](&LookupError{Stage: stagePlayers, ClubID: p.ClubID, PlayerID: p.ID, Err: ErrMissingClubName})
	}
	return resolved(c.PrettyName)
}

func marketValue(ctx context.Context, values ValueResolver, p models.Player) Resolution[float64] {
	v, err := values.Resolve(ctx, p)
	if err != nil {
		return defaulted(0.0, &LookupError{Stage: stagePlayers, ClubID: p.ClubID, PlayerID: p.ID, Err: fmt.Errorf("%w: %w", ErrNoMarketValue, err)})
	}
	return resolved(v)
}
