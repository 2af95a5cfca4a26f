package pipeline

import (
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/table"
)

const stageGames = "games"

// GameInputs are the lookups EnrichGames joins against. Every lookup is strict.
type GameInputs struct {
	Clubs      map[int64]models.Club
	ClubValues map[int64]float64
	Weighted   map[SideKey]float64
}

// EnrichGames attaches club names, raw club values and weighted side values to every game.
// Any missing lookup is a hard failure recorded with the game and club.
func EnrichGames(games table.Frame[models.Game], in GameInputs, rep *Report) table.Frame[models.Game] {
	out := make([]models.Game, len(games.Records))
	for i, g := range games.Records {
		g.HomeClubName = valueOf(rep, in.clubName(g.ID, g.HomeClubID))
		g.AwayClubName = valueOf(rep, in.clubName(g.ID, g.AwayClubID))
		g.MarketValueHome = valueOf(rep, in.clubValue(g.ID, g.HomeClubID))
		g.MarketValueAway = valueOf(rep, in.clubValue(g.ID, g.AwayClubID))
		g.WeightedMarketValueHome = valueOf(rep, in.weighted(g.ID, g.HomeClubID))
		g.WeightedMarketValueAway = valueOf(rep, in.weighted(g.ID, g.AwayClubID))
		out[i] = g
	}
	return table.Frame[models.Game]{Table: games.Table, Records: out}
}

func (in GameInputs) clubName(gameID, clubID int64) Resolution[string] {
	c, ok := in.Clubs[clubID]
	if !ok {
		return failed[string](&LookupError{Stage: stageGames, GameID: gameID, ClubID: clubID, Err: ErrMissingClubName})
	}
	return resolved(c.PrettyName)
}

func (in GameInputs) clubValue(gameID, clubID int64) Resolution[float64] {
	v, ok := in.ClubValues[clubID]
	if !ok {
		return failed[float64](&LookupError{Stage: stageGames, GameID: gameID, ClubID: clubID, Err: ErrMissingClubValue})
	}
	return resolved(v)
}

func (in GameInputs) weighted(gameID, clubID int64) Resolution[float64] {
	v, ok := in.Weighted[SideKey{GameID: gameID, ClubID: clubID}]
	if !ok {
		return failed[float64](&LookupError{Stage: stageGames, GameID: gameID, ClubID: clubID, Err: ErrMissingWeightedValue})
	}
	return resolved(v)
}

// valueOf records a failed resolution and returns its value, the zero value on failure
func valueOf[T any](rep *Report, r Resolution[T]) T {
	if r.Status == StatusFailed {
		rep.record(IssueFailed, r.Err)
	}
	return r.Value
}
