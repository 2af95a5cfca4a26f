package pipeline

import (
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/table"
)

const stageAppearances = "appearances"

// fullMatch is the number of minutes that weighs a player at full value
const fullMatch = 90

// SideKey identifies one club's side of one game
type SideKey struct {
	GameID int64
	ClubID int64
}

// WeightedMarketValue scales a market value by the share of a full match played.
// Stoppage time can push the share above 1.
func WeightedMarketValue(marketValue float64, minutesPlayed int) float64 {
	return marketValue * float64(minutesPlayed) / fullMatch
}

// WeightAppearances computes every appearance's weighted market value and the
// per (game, club) sums. An appearance of an unknown player is a hard failure.
func WeightAppearances(apps table.Frame[models.Appearance], playerValues map[int64]float64, rep *Report) (table.Frame[models.Appearance], map[SideKey]float64) {
	sums := make(map[SideKey]float64)
	out := make([]models.Appearance, len(apps.Records))
	for i, a := range apps.Records {
		weighted := weightedValue(playerValues, a)
		if weighted.Status == StatusFailed {
			rep.record(IssueFailed, weighted.Err)
		} else {
			sums[SideKey{GameID: a.GameID, ClubID: a.PlayerClubID}] += weighted.Value
		}
		a.WeightedMarketValue = weighted.Value
		out[i] = a
	}
	return table.Frame[models.Appearance]{Table: apps.Table, Records: out}, sums
}

func weightedValue(playerValues map[int64]float64, a models.Appearance) Resolution[float64] {
	value, ok := playerValues[a.PlayerID]
	if !ok {
		return failed[float64](&LookupError{Stage: stageAppearances, GameID: a.GameID, ClubID: a.PlayerClubID, PlayerID: a.PlayerID, Err: ErrMissingPlayer})
	}
	return resolved(WeightedMarketValue(value, a.MinutesPlayed))
}
