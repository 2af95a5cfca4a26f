package pipeline

import (
	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/internal/table"
)

const stageClubs = "clubs"

// AggregateClubValues sums player market values per club. A club without
// players gets 0 and a reported default. The returned map holds every club.
func AggregateClubValues(clubs table.Frame[models.Club], players []models.Player, rep *Report) (table.Frame[models.Club], map[int64]float64) {
	sums := make(map[int64]float64)
	for _, p := range players {
		sums[p.ClubID] += p.MarketValue
	}

	values := make(map[int64]float64, clubs.Len())
	out := make([]models.Club, len(clubs.Records))
	for i, c := range clubs.Records {
		value := clubValue(sums, c)
		if value.Status == StatusDefaulted {
			rep.record(IssueDefaulted, value.Err)
		}
		c.MarketValue = value.Value
		values[c.ID] = c.MarketValue
		out[i] = c
	}
	return table.Frame[models.Club]{Table: clubs.Table, Records: out}, values
}

func clubValue(sums map[int64]float64, c models.Club) Resolution[float64] {
	sum, ok := sums[c.ID]
	if !ok {
		return defaulted(0.0, &LookupError{Stage: stageClubs, ClubID: c.ID, Err: ErrClubWithoutPlayer})
	}
	return resolved(sum)
}
